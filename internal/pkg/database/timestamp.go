package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Formatos aceitos ao ler timestamps gravados como texto (SQLite).
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type timeScanner struct {
	dest *time.Time
}

// ScanTime devolve um sql.Scanner que aceita tanto time.Time (PostgreSQL)
// quanto texto (SQLite) e grava o resultado em UTC.
func ScanTime(dest *time.Time) sql.Scanner {
	return &timeScanner{dest: dest}
}

func (s *timeScanner) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*s.dest = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	case nil:
		*s.dest = time.Time{}
		return nil
	default:
		return fmt.Errorf("tipo de timestamp não suportado: %T", src)
	}
}

func (s *timeScanner) parse(v string) error {
	v = strings.TrimSpace(v)
	// time.Time.String() pode incluir a leitura monotônica ("m=+0.0001").
	if i := strings.Index(v, " m="); i > 0 {
		v = v[:i]
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s.dest = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("timestamp inválido: %q", v)
}
