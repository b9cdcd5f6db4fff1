package decks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/flashdeck/internal/common"
	"github.com/dmitrijs2005/flashdeck/internal/dbx"
	"github.com/dmitrijs2005/flashdeck/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, deck *models.Deck) (*models.Deck, error) {

	if deck.ID == "" {
		deck.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO decks (id, name, description, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, last_updated
		 `

	err := r.db.QueryRowContext(ctx, query,
		deck.ID, deck.Name, deck.Description, deck.OwnerID).
		Scan(&deck.ID, &deck.CreatedAt, &deck.LastUpdated)

	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}

	return deck, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, deckID, ownerID string) error {

	query :=
		`DELETE FROM decks
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, deckID, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, deckID, ownerID string) (*models.Deck, error) {

	query :=
		`SELECT id, name, COALESCE(description, ''), owner_id, created_at, last_updated
		 FROM decks
		 WHERE id = $1 AND owner_id = $2
		 `

	deck := &models.Deck{}
	err := r.db.QueryRowContext(ctx, query, deckID, ownerID).
		Scan(&deck.ID, &deck.Name, &deck.Description, &deck.OwnerID, &deck.CreatedAt, &deck.LastUpdated)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}

	return deck, nil
}

func (r *PostgresRepository) ListForOwner(ctx context.Context, ownerID string) ([]*models.Deck, error) {

	query :=
		`SELECT id, name, COALESCE(description, ''), owner_id, created_at, last_updated
		 FROM decks
		 WHERE owner_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	defer rows.Close()

	var result []*models.Deck
	for rows.Next() {
		deck := &models.Deck{}
		if err := rows.Scan(&deck.ID, &deck.Name, &deck.Description, &deck.OwnerID, &deck.CreatedAt, &deck.LastUpdated); err != nil {
			return nil, fmt.Errorf("db error: %v", err)
		}
		result = append(result, deck)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}

	return result, nil
}

func (r *PostgresRepository) LockOwner(ctx context.Context, ownerID string) error {

	query := `SELECT pg_advisory_xact_lock(hashtext($1))`

	if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
		return fmt.Errorf("db error: %v", err)
	}

	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, deckID, ownerID, name, description string) error {

	query :=
		`UPDATE decks
		 SET name = $3, description = $4, last_updated = now()
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, deckID, ownerID, name, description)
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) CountForOwner(ctx context.Context, ownerID string) (int, error) {

	query :=
		`SELECT COUNT(*) FROM decks
		 WHERE owner_id = $1
		 `

	var count int
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %v", err)
	}

	return count, nil
}

func (r *PostgresRepository) TouchLastUpdated(ctx context.Context, deckID, ownerID string) error {

	query :=
		`UPDATE decks SET last_updated = now()
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, deckID, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
