package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderSummary struct {
	ID            uuid.UUID
	CouponCode    *string
	PaymentMethod string
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	ShippingCost  decimal.Decimal
	Surcharge     decimal.Decimal
	Total         decimal.Decimal
	ItemCount     int
	CreatedAt     time.Time
}

type OrderReadStore interface {
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*OrderSummary, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*OrderSummary, error)
}

type OrderQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*OrderSummary, *Cursor, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

// ListByUser pages newest first. One extra row is fetched to decide whether a
// next cursor exists.
func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*OrderSummary, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*OrderSummary
		err  error
	)
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindByUserFirstPage(ctx, userID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, derr
		}
		rows, err = q.store.FindByUserKeyset(ctx, userID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
