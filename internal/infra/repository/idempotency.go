package repository

import (
	"context"
	"time"

	"storefront-pricing/internal/infra"
	"storefront-pricing/internal/infra/db"
	"storefront-pricing/internal/pkg/pgconv"
	"storefront-pricing/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// A live key conflicts and affects no row. An expired one is reset and reused.
const claimIdempotencyKey = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, expires_at)
VALUES ($1, $2, $3, $4, $6)
ON CONFLICT (key, user_id) DO UPDATE
SET endpoint = EXCLUDED.endpoint,
    request_hash = EXCLUDED.request_hash,
    order_id = NULL,
    response = NULL,
    expires_at = EXCLUDED.expires_at,
    created_at = now()
WHERE idempotency_keys.expires_at <= $5`

const getIdempotencyKey = `
SELECT key, user_id, endpoint, request_hash, order_id, response, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2`

const completeIdempotencyKey = `
UPDATE idempotency_keys
SET order_id = $3, response = $4
WHERE key = $1 AND user_id = $2`

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

func (r *IdempotencyRepository) Claim(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, now, expiresAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, claimIdempotencyKey, key, userID, endpoint, requestHash, now, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		rec       shared.IdempotencyRecord
		orderID   pgtype.UUID
		expiresAt pgtype.Timestamptz
	)
	err := tx.QueryRow(ctx, getIdempotencyKey, key, userID).Scan(
		&rec.Key, &rec.UserID, &rec.Endpoint, &rec.RequestHash, &orderID, &rec.Response, &expiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	rec.OrderID = pgconv.UUIDPtrFromPgtype(orderID)
	rec.ExpiresAt = expiresAt.Time
	return &rec, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, tx db.DBTX, key, userID, orderID uuid.UUID, response []byte) error {
	tag, err := tx.Exec(ctx, completeIdempotencyKey, key, userID, orderID, response)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}
