package domain

import (
	"context"
	"errors"

	"github.com/euRezerv/api-sub000/internal/pkg/constants"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrNotPending is returned when a status write finds the invitation already out of PENDING.
	ErrNotPending = errors.New("invitation is no longer pending")
)

// FindOptions tune single-row lookups.
type FindOptions struct {
	IncludeDeleted bool
}

type FindOption func(*FindOptions)

// IncludeDeleted makes a lookup return soft-deleted rows too.
func IncludeDeleted() FindOption {
	return func(o *FindOptions) { o.IncludeDeleted = true }
}

func ApplyFindOptions(opts []FindOption) FindOptions {
	var o FindOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Window is an offset page request.
type Window struct {
	Skip int
	Take int
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID, opts ...FindOption) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
}

// CompanyFilter narrows company listings to those where EmployeeID (a user id) works, optionally with Role.
type CompanyFilter struct {
	EmployeeID *uuid.UUID
	Role       *constants.Role
}

type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID, opts ...FindOption) (*Company, error)
	Create(ctx context.Context, c *Company) error
	List(ctx context.Context, filter CompanyFilter, w Window) ([]Company, int64, error)
}

type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CompanyEmployee, error)
	FindByCompanyAndUser(ctx context.Context, companyID, userID uuid.UUID) (*CompanyEmployee, error)
	Create(ctx context.Context, e *CompanyEmployee) error
}

type InvitationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CompanyEmployeeInvitation, error)
	FindPending(ctx context.Context, senderID, invitedUserID uuid.UUID) (*CompanyEmployeeInvitation, error)
	Create(ctx context.Context, inv *CompanyEmployeeInvitation) error
	// UpdateStatus moves a PENDING invitation to status; ErrNotPending if it already left PENDING.
	UpdateStatus(ctx context.Context, id uuid.UUID, status constants.InvitationStatus) error
	ListByCompany(ctx context.Context, companyID uuid.UUID, status *constants.InvitationStatus, w Window) ([]CompanyEmployeeInvitation, int64, error)
}

type ResourceRepository interface {
	// Create inserts the resource together with its availability rows.
	Create(ctx context.Context, r *Resource) error
	// LinkEmployee inserts one assignment; a failure must not poison the surrounding transaction.
	LinkEmployee(ctx context.Context, link *ResourceEmployee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Resource, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, w Window) ([]Resource, int64, error)
}

// Store is the persistence port consumed by the application services.
type Store interface {
	Users() UserRepository
	Companies() CompanyRepository
	Employees() EmployeeRepository
	Invitations() InvitationRepository
	Resources() ResourceRepository
	// Transaction runs fn against a Store bound to one atomic unit of work.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
