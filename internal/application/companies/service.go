package companies

import (
	"context"
	"errors"
	"strings"

	"github.com/euRezerv/api-sub000/internal/domain"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"
	"github.com/euRezerv/api-sub000/internal/pkg/constants"
	"github.com/euRezerv/api-sub000/internal/pkg/pagination"

	"github.com/google/uuid"
)

var (
	ErrCompanyNotFound = apperror.NotFound("Company not found")
	ErrMissingFields   = apperror.Validation("name, country, city, street and postalCode are required")
)

// Service encapsulates company operations.
type Service struct {
	Store domain.Store
}

type CreateCompanyInput struct {
	Name       string `json:"name"`
	Country    string `json:"country"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
}

type ListInput struct {
	// EmployeeID restricts the list to companies where this user works.
	EmployeeID *uuid.UUID
	Role       *constants.Role
	Page       pagination.Params
}

// CreateCompany creates a company and makes the creator its OWNER in the same transaction.
func (s *Service) CreateCompany(ctx context.Context, in CreateCompanyInput, userID uuid.UUID) (*domain.Company, error) {
	c := &domain.Company{
		Name:        strings.TrimSpace(in.Name),
		Country:     strings.TrimSpace(in.Country),
		City:        strings.TrimSpace(in.City),
		Street:      strings.TrimSpace(in.Street),
		PostalCode:  strings.TrimSpace(in.PostalCode),
		CreatedByID: userID,
	}
	if c.Name == "" || c.Country == "" || c.City == "" || c.Street == "" || c.PostalCode == "" {
		return nil, ErrMissingFields
	}

	err := s.Store.Transaction(ctx, func(tx domain.Store) error {
		if err := tx.Companies().Create(ctx, c); err != nil {
			return err
		}
		return tx.Employees().Create(ctx, &domain.CompanyEmployee{
			CompanyID:  c.ID,
			EmployeeID: userID,
			Role:       constants.Owner,
		})
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return c, nil
}

// GetCompanyByID returns a live company.
func (s *Service) GetCompanyByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	c, err := s.Store.Companies().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, apperror.Internal(err)
	}
	return c, nil
}

// ListCompanies pages through live companies, newest first.
func (s *Service) ListCompanies(ctx context.Context, in ListInput) ([]domain.Company, pagination.Meta, error) {
	filter := domain.CompanyFilter{EmployeeID: in.EmployeeID, Role: in.Role}
	rows, total, err := s.Store.Companies().List(ctx, filter, domain.Window{Skip: in.Page.Skip, Take: in.Page.Take})
	if err != nil {
		return nil, pagination.Meta{}, apperror.Internal(err)
	}
	return rows, in.Page.Meta(total), nil
}
