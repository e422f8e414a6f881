package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"gocontrole/config"
	"gocontrole/internal/domain"
	apperror "gocontrole/internal/errors"
	"gocontrole/internal/pkg/database"
	"gocontrole/internal/pkg/logger"
	"gocontrole/internal/pkg/password"
	"gocontrole/internal/repository/userrepo"
	"gocontrole/internal/service/userservice"
)

const (
	defaultDriver = database.SQLite
	defaultDSN    = "./gocontrole.db"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email do usuário")
	passwordFlag := fs.String("password", "", "Senha (opcional; pedida no terminal se omitida)")
	admin := fs.Bool("admin", false, "Cria o usuário com papel admin")
	driver := fs.String("driver", defaultDriver, "Driver do banco (sqlite ou postgres)")
	dsn := fs.String("db", defaultDSN, "Caminho do SQLite ou DSN do PostgreSQL")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		fmt.Fprintln(stdout, "Uso: adduser -email <email> [-password <senha>] [-admin] [-driver sqlite|postgres] [-db <dsn>]")
		fs.PrintDefaults()
		return fmt.Errorf("flag obrigatória ausente: email")
	}

	// .env e variáveis de ambiente valem quando a flag ficou no padrão.
	dbEnv, err := config.LoadDatabaseEnv()
	if err != nil {
		return err
	}
	if dbEnv.DBDriver != "" && *driver == defaultDriver {
		*driver = dbEnv.DBDriver
	}
	if dbEnv.DatabaseURL != "" && *dsn == defaultDSN {
		*dsn = dbEnv.DatabaseURL
	}

	plain := *passwordFlag
	if plain == "" {
		fmt.Fprint(stdout, "Senha: ")
		plain, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("falha ao ler a senha: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(plain) == "" {
		return fmt.Errorf("a senha não pode ser vazia")
	}

	db, err := database.Open(*driver, *dsn)
	if err != nil {
		return fmt.Errorf("falha ao abrir o banco: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}

	log := logger.NewWithWriter(stderr, "warn")
	repo := userrepo.NewUserRepository(db, 5*time.Second, log)
	// Sem sessões: o serviço é usado só para Register.
	svc := userservice.NewService(repo, nil, password.NewHasher(0), true, log)

	role := domain.RoleUser
	if *admin {
		role = domain.RoleAdmin
	}

	u, err := svc.Register(context.Background(), domain.UserRegistration{
		Email:    *email,
		Password: plain,
		Role:     role,
	})
	if apperror.IsConflict(err) {
		return fmt.Errorf("o usuário %s já existe", userservice.NormalizeEmail(*email))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Usuário %s criado com sucesso (id %s, papel %s)\n", u.Email, u.ID, u.Role)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Pipes e testes
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
