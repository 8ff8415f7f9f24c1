//go:build unit || e2e

// Package fakeuow is an in-memory shared.UnitOfWork. Writes made inside
// Within are staged and only applied when fn returns nil.
package fakeuow

import (
	"context"
	"sync"
	"time"

	"storefront-pricing/internal/domain/catalog"
	"storefront-pricing/internal/domain/coupon"
	"storefront-pricing/internal/infra"
	"storefront-pricing/internal/infra/db"
	"storefront-pricing/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.Mutex
	Coupons  map[string]*coupon.Coupon
	Variants map[uuid.UUID]catalog.Variant
	Carts    map[uuid.UUID][]shared.CartItemSnapshot
	Orders   []shared.OrderRecord
	// Redemptions counts successful IncrementUsage calls on top of each coupon's UsedCount.
	Redemptions map[uuid.UUID]int
	Idempotency map[idempotencyKey]shared.IdempotencyRecord

	ReadOnlyCalls int
	WriteCalls    int
	ReadErr       error
	// BeforeClear runs inside Within just before a cart is cleared, to
	// simulate a request that changes the cart concurrently.
	BeforeClear func(s *Store, userID uuid.UUID)
}

func NewStore() *Store {
	return &Store{
		Coupons:     map[string]*coupon.Coupon{},
		Variants:    map[uuid.UUID]catalog.Variant{},
		Carts:       map[uuid.UUID][]shared.CartItemSnapshot{},
		Redemptions: map[uuid.UUID]int{},
		Idempotency: map[idempotencyKey]shared.IdempotencyRecord{},
	}
}

type idempotencyKey struct{ key, userID uuid.UUID }

func (s *Store) AddCoupon(c *coupon.Coupon) {
	s.Coupons[c.Code().String()] = c
}

func (s *Store) AddVariant(v catalog.Variant) {
	s.Variants[v.ID] = v
}

func (s *Store) AddToCart(userID, variantID uuid.UUID, quantity int) {
	s.Carts[userID] = append(s.Carts[userID], shared.CartItemSnapshot{VariantID: variantID, Quantity: quantity})
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.WriteCalls++

	tx := &fakeTx{store: s, redemptions: map[uuid.UUID]int{}, idempotency: map[idempotencyKey]shared.IdempotencyRecord{}}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	for id, n := range tx.redemptions {
		s.Redemptions[id] += n
	}
	s.Orders = append(s.Orders, tx.orders...)
	for _, userID := range tx.cleared {
		delete(s.Carts, userID)
	}
	for k, rec := range tx.idempotency {
		s.Idempotency[k] = rec
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads shared.PricingReads) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ReadOnlyCalls++
	return fn(ctx, &reads{store: s})
}

type reads struct {
	store *Store
}

func (r *reads) CouponByCode(_ context.Context, code string) (*coupon.Coupon, error) {
	if r.store.ReadErr != nil {
		return nil, r.store.ReadErr
	}
	c, ok := r.store.Coupons[code]
	if !ok {
		return nil, infra.RepositoryError{Kind: infra.KindNotFound}
	}
	return c, nil
}

func (r *reads) VariantsByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Variant, error) {
	if r.store.ReadErr != nil {
		return nil, r.store.ReadErr
	}
	out := make(map[uuid.UUID]catalog.Variant, len(ids))
	for _, id := range ids {
		if v, ok := r.store.Variants[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (r *reads) CartItemsByUser(_ context.Context, userID uuid.UUID) ([]shared.CartItemSnapshot, error) {
	if r.store.ReadErr != nil {
		return nil, r.store.ReadErr
	}
	return r.store.Carts[userID], nil
}

type fakeTx struct {
	store       *Store
	redemptions map[uuid.UUID]int
	orders      []shared.OrderRecord
	cleared     []uuid.UUID
	idempotency map[idempotencyKey]shared.IdempotencyRecord
}

func (t *fakeTx) Coupons() shared.CouponRepository { return t }
func (t *fakeTx) Orders() shared.OrderRepository   { return orderRepo{t} }
func (t *fakeTx) Carts() shared.CartRepository     { return cartRepo{t} }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository {
	return idempotencyRepo{t}
}
func (t *fakeTx) Reads() shared.PricingReads { return &reads{store: t.store} }
func (t *fakeTx) DB() db.DBTX                { return nil }

func (t *fakeTx) IncrementUsage(_ context.Context, _ db.DBTX, couponID uuid.UUID) (bool, error) {
	for _, c := range t.store.Coupons {
		if c.ID() != couponID {
			continue
		}
		used := c.UsedCount() + t.store.Redemptions[couponID] + t.redemptions[couponID]
		if !c.IsActive() || (c.MaxUses() != nil && used >= *c.MaxUses()) {
			return false, nil
		}
		t.redemptions[couponID]++
		return true, nil
	}
	return false, nil
}

type orderRepo struct{ tx *fakeTx }

func (r orderRepo) Create(_ context.Context, _ db.DBTX, order shared.OrderRecord) (uuid.UUID, error) {
	r.tx.orders = append(r.tx.orders, order)
	return uuid.New(), nil
}

type cartRepo struct{ tx *fakeTx }

func (r cartRepo) Clear(_ context.Context, _ db.DBTX, userID uuid.UUID) (int64, error) {
	if hook := r.tx.store.BeforeClear; hook != nil {
		hook(r.tx.store, userID)
	}
	r.tx.cleared = append(r.tx.cleared, userID)
	return int64(len(r.tx.store.Carts[userID])), nil
}

type idempotencyRepo struct{ tx *fakeTx }

func (r idempotencyRepo) lookup(k idempotencyKey) (shared.IdempotencyRecord, bool) {
	if rec, ok := r.tx.idempotency[k]; ok {
		return rec, true
	}
	rec, ok := r.tx.store.Idempotency[k]
	return rec, ok
}

func (r idempotencyRepo) Claim(_ context.Context, _ db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, now, expiresAt time.Time) (bool, error) {
	k := idempotencyKey{key, userID}
	if rec, ok := r.lookup(k); ok && rec.ExpiresAt.After(now) {
		return false, nil
	}
	r.tx.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) Get(_ context.Context, _ db.DBTX, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.lookup(idempotencyKey{key, userID})
	if !ok {
		return nil, infra.RepositoryError{Kind: infra.KindNotFound}
	}
	return &rec, nil
}

func (r idempotencyRepo) Complete(_ context.Context, _ db.DBTX, key, userID, orderID uuid.UUID, response []byte) error {
	k := idempotencyKey{key, userID}
	rec, ok := r.lookup(k)
	if !ok {
		return infra.RepositoryError{Kind: infra.KindNotFound}
	}
	rec.OrderID = &orderID
	rec.Response = response
	r.tx.idempotency[k] = rec
	return nil
}
