package resources

import (
	"context"
	"errors"

	"github.com/euRezerv/api-sub000/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// lookupConcurrency caps in-flight membership reads per request.
const lookupConcurrency = 8

// MembershipLookup finds company employee records by id.
type MembershipLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CompanyEmployee, error)
}

// Resolution partitions requested employee ids. Both lists keep first-occurrence order.
type Resolution struct {
	Valid   []*domain.CompanyEmployee
	Invalid []uuid.UUID
}

// Dedupe drops repeated ids, keeping the first occurrence.
func Dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Resolve checks every distinct id against companyID. An id is valid when an employee record with
// that id exists and belongs to companyID. Lookup failures other than not-found abort the resolution.
func Resolve(ctx context.Context, lookup MembershipLookup, companyID uuid.UUID, ids []uuid.UUID) (*Resolution, error) {
	ids = Dedupe(ids)
	found := make([]*domain.CompanyEmployee, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			e, err := lookup.FindByID(gctx, id)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if e.CompanyID == companyID {
				found[i] = e
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Resolution{}
	for i, id := range ids {
		if found[i] != nil {
			res.Valid = append(res.Valid, found[i])
		} else {
			res.Invalid = append(res.Invalid, id)
		}
	}
	return res, nil
}
