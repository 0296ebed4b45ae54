// Package repository implements domain.Store on top of GORM.
package repository

import (
	"context"
	"errors"

	"github.com/euRezerv/api-sub000/internal/domain"
	"github.com/euRezerv/api-sub000/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the GORM-backed domain.Store. Inside Transaction, db is the transaction handle.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() domain.UserRepository { return &userRepo{db: s.db} }
func (s *Store) Companies() domain.CompanyRepository { return &companyRepo{db: s.db} }
func (s *Store) Employees() domain.EmployeeRepository { return &employeeRepo{db: s.db} }
func (s *Store) Invitations() domain.InvitationRepository { return &invitationRepo{db: s.db} }
func (s *Store) Resources() domain.ResourceRepository { return &resourceRepo{db: s.db} }

// Transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func scoped(db *gorm.DB, opts []domain.FindOption) *gorm.DB {
	if domain.ApplyFindOptions(opts).IncludeDeleted {
		return db.Unscoped()
	}
	return db
}

type userRepo struct{ db *gorm.DB }

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID, opts ...domain.FindOption) (*domain.User, error) {
	var u domain.User
	if err := scoped(r.db.WithContext(ctx), opts).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

type companyRepo struct{ db *gorm.DB }

func (r *companyRepo) FindByID(ctx context.Context, id uuid.UUID, opts ...domain.FindOption) (*domain.Company, error) {
	var c domain.Company
	if err := scoped(r.db.WithContext(ctx), opts).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *companyRepo) Create(ctx context.Context, c *domain.Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *companyRepo) List(ctx context.Context, filter domain.CompanyFilter, w domain.Window) ([]domain.Company, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Company{})
	if filter.EmployeeID != nil || filter.Role != nil {
		members := r.db.Model(&domain.CompanyEmployee{}).Select("company_id")
		if filter.EmployeeID != nil {
			members = members.Where("employee_id = ?", *filter.EmployeeID)
		}
		if filter.Role != nil {
			members = members.Where("role = ?", *filter.Role)
		}
		q = q.Where("id IN (?)", members)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	companies := []domain.Company{}
	if err := q.Order("created_at DESC").Offset(w.Skip).Limit(w.Take).Find(&companies).Error; err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

type employeeRepo struct{ db *gorm.DB }

func (r *employeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.CompanyEmployee, error) {
	var e domain.CompanyEmployee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *employeeRepo) FindByCompanyAndUser(ctx context.Context, companyID, userID uuid.UUID) (*domain.CompanyEmployee, error) {
	var e domain.CompanyEmployee
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, userID).
		First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *employeeRepo) Create(ctx context.Context, e *domain.CompanyEmployee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

type invitationRepo struct{ db *gorm.DB }

func (r *invitationRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.CompanyEmployeeInvitation, error) {
	var inv domain.CompanyEmployeeInvitation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error; err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func (r *invitationRepo) FindPending(ctx context.Context, senderID, invitedUserID uuid.UUID) (*domain.CompanyEmployeeInvitation, error) {
	var inv domain.CompanyEmployeeInvitation
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? AND invited_user_id = ? AND status = ?", senderID, invitedUserID, constants.InvitationPending).
		First(&inv).Error; err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func (r *invitationRepo) Create(ctx context.Context, inv *domain.CompanyEmployeeInvitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invitationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.InvitationStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.CompanyEmployeeInvitation{}).
		Where("id = ? AND status = ?", id, constants.InvitationPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotPending
	}
	return nil
}

func (r *invitationRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, status *constants.InvitationStatus, w domain.Window) ([]domain.CompanyEmployeeInvitation, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.CompanyEmployeeInvitation{}).Where("company_id = ?", companyID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	invitations := []domain.CompanyEmployeeInvitation{}
	if err := q.Order("created_at DESC").Offset(w.Skip).Limit(w.Take).Find(&invitations).Error; err != nil {
		return nil, 0, err
	}
	return invitations, total, nil
}

type resourceRepo struct{ db *gorm.DB }

func (r *resourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	return r.db.WithContext(ctx).Create(res).Error
}

// LinkEmployee runs in its own (nested) transaction, which GORM turns into a savepoint when r.db is
// already a transaction.
func (r *resourceRepo) LinkEmployee(ctx context.Context, link *domain.ResourceEmployee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(link).Error
	})
}

func (r *resourceRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	var res domain.Resource
	if err := r.db.WithContext(ctx).
		Preload("Availability").
		Preload("Employees").
		Where("id = ?", id).
		First(&res).Error; err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

func (r *resourceRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, w domain.Window) ([]domain.Resource, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Resource{}).Where("company_id = ?", companyID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	resources := []domain.Resource{}
	if err := q.Preload("Availability").
		Order("created_at DESC").
		Offset(w.Skip).
		Limit(w.Take).
		Find(&resources).Error; err != nil {
		return nil, 0, err
	}
	return resources, total, nil
}
