package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/flashdeck/internal/dbx"
	"github.com/dmitrijs2005/flashdeck/internal/server/migrations"
	"github.com/dmitrijs2005/flashdeck/internal/server/repositories/cards"
	"github.com/dmitrijs2005/flashdeck/internal/server/repositories/decks"
	"github.com/dmitrijs2005/flashdeck/internal/server/repositories/entitlements"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Decks(db dbx.DBTX) decks.Repository {
	return decks.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Cards(db dbx.DBTX) cards.Repository {
	return cards.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Entitlements(db dbx.DBTX) entitlements.Repository {
	return entitlements.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
