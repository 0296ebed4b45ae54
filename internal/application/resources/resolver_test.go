package resources

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/euRezerv/api-sub000/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	mu        sync.Mutex
	employees map[uuid.UUID]*domain.CompanyEmployee
	calls     map[uuid.UUID]int
	err       error
}

func (f *fakeLookup) FindByID(_ context.Context, id uuid.UUID) (*domain.CompanyEmployee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[uuid.UUID]int{}
	}
	f.calls[id]++
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func TestDedupe(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	assert.Equal(t, []uuid.UUID{a, b, c}, Dedupe([]uuid.UUID{a, b, a, c, b, a}))
	assert.Empty(t, Dedupe(nil))
}

func TestResolve_PartitionsDuplicatesAndInvalid(t *testing.T) {
	company := uuid.New()
	a := &domain.CompanyEmployee{ID: uuid.New(), CompanyID: company}
	b := &domain.CompanyEmployee{ID: uuid.New(), CompanyID: company}
	foreign := &domain.CompanyEmployee{ID: uuid.New(), CompanyID: uuid.New()}
	invalid1, invalid2 := uuid.New(), uuid.New()
	lookup := &fakeLookup{employees: map[uuid.UUID]*domain.CompanyEmployee{a.ID: a, b.ID: b, foreign.ID: foreign}}

	res, err := Resolve(context.Background(), lookup, company, []uuid.UUID{a.ID, a.ID, b.ID, invalid1, foreign.ID, invalid2, invalid1})
	require.NoError(t, err)

	require.Len(t, res.Valid, 2)
	assert.Equal(t, a.ID, res.Valid[0].ID)
	assert.Equal(t, b.ID, res.Valid[1].ID)
	assert.Equal(t, []uuid.UUID{invalid1, foreign.ID, invalid2}, res.Invalid)
	assert.Equal(t, 1, lookup.calls[a.ID])
	assert.Equal(t, 1, lookup.calls[invalid1])
}

func TestResolve_NoneValid(t *testing.T) {
	lookup := &fakeLookup{employees: map[uuid.UUID]*domain.CompanyEmployee{}}
	x := uuid.New()
	res, err := Resolve(context.Background(), lookup, uuid.New(), []uuid.UUID{x, x})
	require.NoError(t, err)
	assert.Empty(t, res.Valid)
	assert.Equal(t, []uuid.UUID{x}, res.Invalid)
}

func TestResolve_LookupFailureAborts(t *testing.T) {
	boom := errors.New("connection reset")
	lookup := &fakeLookup{err: boom}
	_, err := Resolve(context.Background(), lookup, uuid.New(), []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, boom)
}
