package cards

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

func (r *PostgresRepository) Create(ctx context.Context, card *models.Card) (*models.Card, error) {

	if card.ID == "" {
		card.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO cards (id, deck_id, owner_id, front_text, back_text, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		card.ID, card.DeckID, card.OwnerID, card.FrontText, card.BackText, card.Description).
		Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}

	return card, nil
}

func (r *PostgresRepository) Update(ctx context.Context, cardID, ownerID, frontText, backText, description string) error {

	query :=
		`UPDATE cards
		 SET front_text = $3, back_text = $4, description = $5, updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, cardID, ownerID, frontText, backText, description)
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

func (r *PostgresRepository) Delete(ctx context.Context, cardID, ownerID string) error {

	query :=
		`DELETE FROM cards
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, cardID, ownerID)
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

func (r *PostgresRepository) GetDeckID(ctx context.Context, cardID, ownerID string) (string, error) {

	query :=
		`SELECT deck_id FROM cards
		 WHERE id = $1 AND owner_id = $2
		 `

	var deckID string
	err := r.db.QueryRowContext(ctx, query, cardID, ownerID).Scan(&deckID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %v", err)
	}

	return deckID, nil
}

func (r *PostgresRepository) ListForDeck(ctx context.Context, deckID, ownerID string) ([]*models.Card, error) {

	query :=
		`SELECT id, deck_id, owner_id, front_text, back_text, COALESCE(description, ''), created_at, updated_at
		 FROM cards
		 WHERE deck_id = $1 AND owner_id = $2
		 `

	rows, err := r.db.QueryContext(ctx, query, deckID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}
	defer rows.Close()

	var result []*models.Card
	for rows.Next() {
		card := &models.Card{}
		if err := rows.Scan(&card.ID, &card.DeckID, &card.OwnerID, &card.FrontText, &card.BackText,
			&card.Description, &card.CreatedAt, &card.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %v", err)
		}
		result = append(result, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %v", err)
	}

	return result, nil
}
