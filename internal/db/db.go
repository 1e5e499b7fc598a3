// Package db keeps per-song play counters in a libsql (Turso) database.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lyricduet/duetbot/internal/utils/e"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

type Manager struct {
	db *sql.DB
}

func New(databaseURL, authToken string) (*Manager, error) {
	url := fmt.Sprintf("%s?authToken=%s", databaseURL, authToken)

	database, err := sql.Open("libsql", url)
	if err != nil {
		return nil, e.Wrap("failed to open db", err)
	}

	database.SetMaxOpenConns(25)
	database.SetMaxIdleConns(25)
	database.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, e.Wrap("failed to ping database", err)
	}

	return &Manager{db: database}, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}
