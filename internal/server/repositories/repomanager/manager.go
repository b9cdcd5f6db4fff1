// Package repomanager builds repositories over an arbitrary DBTX, so
// services can run several repository calls inside one transaction by
// passing the same *sql.Tx to each factory method.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/flashdeck/internal/dbx"
	"github.com/dmitrijs2005/flashdeck/internal/server/repositories/cards"
	"github.com/dmitrijs2005/flashdeck/internal/server/repositories/decks"
	"github.com/dmitrijs2005/flashdeck/internal/server/repositories/entitlements"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Decks(db dbx.DBTX) decks.Repository
	Cards(db dbx.DBTX) cards.Repository
	Entitlements(db dbx.DBTX) entitlements.Repository
}
