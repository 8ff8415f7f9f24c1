package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"storefront-pricing/internal/domain/catalog"
	"storefront-pricing/internal/domain/coupon"
	"storefront-pricing/internal/infra/db"
	"storefront-pricing/internal/infra/readstore"
	"storefront-pricing/internal/infra/repository"
	"storefront-pricing/internal/pkg/errs"
	"storefront-pricing/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// retryPolicy re-runs a write transaction that lost a serialization or
// deadlock race. Delays double per attempt with up to 20% jitter.
type retryPolicy struct {
	maxRetries int
	base       time.Duration
}

var defaultRetryPolicy = retryPolicy{maxRetries: 3, base: 100 * time.Millisecond}

func (p retryPolicy) shouldRetry(err error, attempt int) bool {
	return isRetryableError(err) && attempt < p.maxRetries
}

func (p retryPolicy) backoff(attempt int) time.Duration {
	wait := p.base << attempt
	if jitter := int64(wait / 5); jitter > 0 {
		wait += time.Duration(rand.Int64N(jitter))
	}
	return wait
}

// txStarter is the part of *pgxpool.Pool the unit of work needs.
type txStarter interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	pool  txStarter
	retry retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool, retry: defaultRetryPolicy}
}

// Within runs checkout at RepeatableRead so the cart, coupon and catalog rows
// it prices come from one snapshot. A concurrent checkout that already
// redeemed the coupon or cleared the cart surfaces as 40001 and is retried
// against the new state.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead}

	for attempt := 0; ; attempt++ {
		err := u.attempt(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !u.retry.shouldRetry(err, attempt) {
			if isRetryableError(err) {
				slog.Error("transaction failed after max retries", "attempts", attempt+1, "error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		wait := u.retry.backoff(attempt)
		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// attempt runs fn once. The deferred rollback also covers a panic in fn and
// is a no-op after a successful commit.
func (u *PostgresUoW) attempt(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer rollback(ctx, pgxTx)

	if err := fn(ctx, newPgTx(pgxTx)); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// RepeatableRead gives every pricing request a single snapshot of coupon, slab
// and cart rows.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads shared.PricingReads) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer rollback(ctx, pgxTx)

	if err := fn(ctx, newPricingReads(pgxTx)); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Warn("rollback failed", "error", err.Error())
	}
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
}

type pgTx struct {
	dbtx db.DBTX

	// created on first use
	couponRepo shared.CouponRepository
	orderRepo  shared.OrderRepository
	cartRepo   shared.CartRepository
	idemRepo   shared.IdempotencyRepository
	reads      shared.PricingReads
}

func newPgTx(dbtx db.DBTX) *pgTx {
	return &pgTx{dbtx: dbtx}
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Coupons() shared.CouponRepository {
	if t.couponRepo == nil {
		t.couponRepo = repository.NewCouponRepository()
	}
	return t.couponRepo
}

func (t *pgTx) Orders() shared.OrderRepository {
	if t.orderRepo == nil {
		t.orderRepo = repository.NewOrderRepository()
	}
	return t.orderRepo
}

func (t *pgTx) Carts() shared.CartRepository {
	if t.cartRepo == nil {
		t.cartRepo = repository.NewCartRepository()
	}
	return t.cartRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idemRepo == nil {
		t.idemRepo = repository.NewIdempotencyRepository()
	}
	return t.idemRepo
}

func (t *pgTx) Reads() shared.PricingReads {
	if t.reads == nil {
		t.reads = newPricingReads(t.dbtx)
	}
	return t.reads
}

type pricingReads struct {
	coupons *readstore.CouponReadStore
	catalog *readstore.CatalogReadStore
	carts   *readstore.CartReadStore
}

func newPricingReads(dbtx db.DBTX) *pricingReads {
	return &pricingReads{
		coupons: readstore.NewCouponReadStore(dbtx),
		catalog: readstore.NewCatalogReadStore(dbtx),
		carts:   readstore.NewCartReadStore(dbtx),
	}
}

func (r *pricingReads) CouponByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return r.coupons.FindByCode(ctx, code)
}

func (r *pricingReads) VariantsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Variant, error) {
	return r.catalog.FindVariants(ctx, ids)
}

func (r *pricingReads) CartItemsByUser(ctx context.Context, userID uuid.UUID) ([]shared.CartItemSnapshot, error) {
	return r.carts.FindByUser(ctx, userID)
}
