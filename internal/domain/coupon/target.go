package coupon

import "github.com/google/uuid"

// TargetRule restricts which cart lines a coupon applies to. The concrete
// types are AllCart, ByCategory, ByProduct, ByBrand and Combined; callers
// switch over them exhaustively.
type TargetRule interface {
	isTargetRule()
}

type AllCart struct{}

type ByCategory struct {
	IDs IDSet
}

type ByProduct struct {
	IDs IDSet
}

type ByBrand struct {
	IDs IDSet
}

// Combined matches a line when any of its non-empty sets matches.
type Combined struct {
	Categories IDSet
	Products   IDSet
	Brands     IDSet
}

func (AllCart) isTargetRule()    {}
func (ByCategory) isTargetRule() {}
func (ByProduct) isTargetRule()  {}
func (ByBrand) isTargetRule()    {}
func (Combined) isTargetRule()   {}

type IDSet map[uuid.UUID]struct{}

func NewIDSet(ids ...uuid.UUID) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s IDSet) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) HasAny(ids []uuid.UUID) bool {
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}

// NewTargetRule builds the rule from the three targeting join tables.
func NewTargetRule(categoryIDs, productIDs, brandIDs []uuid.UUID) TargetRule {
	kinds := 0
	for _, ids := range [][]uuid.UUID{categoryIDs, productIDs, brandIDs} {
		if len(ids) > 0 {
			kinds++
		}
	}

	switch {
	case kinds == 0:
		return AllCart{}
	case kinds > 1:
		return Combined{
			Categories: NewIDSet(categoryIDs...),
			Products:   NewIDSet(productIDs...),
			Brands:     NewIDSet(brandIDs...),
		}
	case len(categoryIDs) > 0:
		return ByCategory{IDs: NewIDSet(categoryIDs...)}
	case len(productIDs) > 0:
		return ByProduct{IDs: NewIDSet(productIDs...)}
	default:
		return ByBrand{IDs: NewIDSet(brandIDs...)}
	}
}

// IsTargeted reports whether the rule narrows the coupon to part of the cart.
func IsTargeted(rule TargetRule) bool {
	switch rule.(type) {
	case nil, AllCart:
		return false
	default:
		return true
	}
}
