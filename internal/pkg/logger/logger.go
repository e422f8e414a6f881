package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// SlogLogger é a implementação concreta da interface Logger sobre log/slog,
// com saída JSON estruturada.
type SlogLogger struct {
	log  *slog.Logger
	exit func(int)
}

// NewWithWriter cria um Logger que escreve em w. O main passa os.Stdout;
// testes e binários auxiliares passam seus próprios writers.
func NewWithWriter(w io.Writer, level string) *SlogLogger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return &SlogLogger{log: slog.New(handler), exit: os.Exit}
}

// Nop descarta tudo. Útil em testes que não verificam logs.
func Nop() *SlogLogger {
	return NewWithWriter(io.Discard, "error")
}

// ParseLevel converte o nível textual da configuração ("debug", "info", ...) para slog.Level.
// Valores desconhecidos caem em info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog expõe o *slog.Logger subjacente, instalado como slog.Default no main.
func (l *SlogLogger) Slog() *slog.Logger {
	return l.log
}

func attrs(fields map[string]interface{}) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}

// Implementações da Interface Logger

func (l *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, attrs(fields)...)
}

func (l *SlogLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, attrs(fields)...)
}

func (l *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, attrs(fields)...)
}

func (l *SlogLogger) Error(msg string, err error) {
	if err != nil {
		l.log.Error(msg, "error", err.Error())
		return
	}
	l.log.Error(msg)
}

// Fatal registra o erro e encerra o processo.
func (l *SlogLogger) Fatal(msg string, err error) {
	args := []any{}
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.log.Log(context.Background(), slog.LevelError+4, msg, args...)
	l.exit(1)
}
