package entitlements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/flashdeck/internal/common"
	"github.com/dmitrijs2005/flashdeck/internal/dbx"
	"github.com/dmitrijs2005/flashdeck/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID string) (*models.Entitlement, error) {

	query :=
		`SELECT owner_id, plan, COALESCE(payment_method, ''), COALESCE(payment_id, ''), COALESCE(order_id, ''), upgraded_at
		 FROM entitlements
		 WHERE owner_id = $1
		 `

	e := &models.Entitlement{}
	err := r.db.QueryRowContext(ctx, query, ownerID).
		Scan(&e.OwnerID, &e.Plan, &e.PaymentMethod, &e.PaymentID, &e.OrderID, &e.UpgradedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %v", err)
	}

	return e, nil
}

func (r *PostgresRepository) UpgradeToPro(ctx context.Context, e *models.Entitlement) error {

	query :=
		`INSERT INTO entitlements (owner_id, plan, payment_method, payment_id, order_id, upgraded_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (owner_id) DO UPDATE
		 SET plan = EXCLUDED.plan,
		     payment_method = EXCLUDED.payment_method,
		     payment_id = EXCLUDED.payment_id,
		     order_id = EXCLUDED.order_id,
		     upgraded_at = EXCLUDED.upgraded_at
		 `

	_, err := r.db.ExecContext(ctx, query,
		e.OwnerID, e.Plan, e.PaymentMethod, e.PaymentID, e.OrderID)
	if err != nil {
		return fmt.Errorf("db error: %v", err)
	}

	return nil
}
