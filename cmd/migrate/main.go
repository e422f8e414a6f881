package main

import (
	"flag"
	"fmt"
	"log"

	"gocontrole/config"
	"gocontrole/internal/pkg/database"
)

// Uso: go run ./cmd/migrate [-driver sqlite|postgres] [-dsn ...] [up|down|status|redo|version|reset] [args]
// As migrações são as mesmas embutidas no servidor.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("goose: configuração inválida: %v", err)
	}

	driver := flag.String("driver", cfg.DBDriver, "driver do banco (sqlite ou postgres)")
	dsn := flag.String("dsn", cfg.DatabaseURL, "string de conexão; padrão DATABASE_URL")
	flag.Parse()

	db, err := database.Open(*driver, *dsn)
	if err != nil {
		log.Fatalf("goose: falha ao conectar ao DB: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: falha ao fechar o DB: %v\n", err)
		}
	}()

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	if err := db.RunMigrationCommand(command, arguments[1:]...); err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("goose %s success\n", command)
}
