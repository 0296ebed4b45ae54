package resources

import (
	"context"
	"errors"
	"strings"

	"github.com/euRezerv/api-sub000/internal/application/policies/authorization"
	"github.com/euRezerv/api-sub000/internal/domain"
	"github.com/euRezerv/api-sub000/internal/pkg/apperror"
	"github.com/euRezerv/api-sub000/internal/pkg/constants"
	"github.com/euRezerv/api-sub000/internal/pkg/pagination"
	"github.com/euRezerv/api-sub000/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type Service struct {
	Store domain.Store
}

func NewService(store domain.Store) *Service {
	return &Service{Store: store}
}

type AvailabilityInput struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type CreateInput struct {
	Name                    string              `json:"name"`
	Description             *string             `json:"description"`
	Category                string              `json:"category"`
	RequiresBookingApproval bool                `json:"requiresBookingApproval"`
	Availability            []AvailabilityInput `json:"availability"`
	EmployeeIDs             []uuid.UUID         `json:"employeeIds"`
}

// Created is a new resource with the assignments that went through. FailedEmployeeIDs lists every
// requested id that was not linked, once each.
type Created struct {
	Resource          *domain.Resource          `json:"resource"`
	Employees         []domain.ResourceEmployee `json:"employees"`
	FailedEmployeeIDs []uuid.UUID               `json:"failedEmployeeIds,omitempty"`
}

// Normalize upper-cases day and category tokens and rejects anything resolution must not see:
// an unknown category, fewer than 1 or more than 7 availability entries, repeated days and bad time windows.
func Normalize(in CreateInput) (*domain.Resource, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	category, ok := constants.ParseResourceCategory(in.Category)
	if !ok {
		return nil, ErrInvalidCategory
	}
	if len(in.Availability) < 1 || len(in.Availability) > len(constants.DaysOfWeek) {
		return nil, ErrAvailabilityCount
	}

	seen := make(map[constants.DayOfWeek]bool, len(in.Availability))
	slots := make([]domain.ResourceAvailability, 0, len(in.Availability))
	for _, a := range in.Availability {
		day, ok := constants.ParseDayOfWeek(a.DayOfWeek)
		if !ok {
			return nil, ErrInvalidDayOfWeek.WithDetails(map[string]string{"dayOfWeek": a.DayOfWeek})
		}
		if seen[day] {
			return nil, ErrDuplicateDayOfWeek.WithDetails(map[string]string{"dayOfWeek": string(day)})
		}
		seen[day] = true

		start, ok := validation.ParseClock(a.StartTime)
		if !ok {
			return nil, ErrInvalidTime.WithDetails(map[string]string{"startTime": a.StartTime})
		}
		end, ok := validation.ParseClock(a.EndTime)
		if !ok {
			return nil, ErrInvalidTime.WithDetails(map[string]string{"endTime": a.EndTime})
		}
		if start >= end {
			return nil, ErrStartNotBeforeEnd.WithDetails(map[string]string{"dayOfWeek": string(day)})
		}
		slots = append(slots, domain.ResourceAvailability{
			DayOfWeek: day,
			StartTime: datatypes.Time(start),
			EndTime:   datatypes.Time(end),
		})
	}

	var description *string
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			description = &d
		}
	}

	return &domain.Resource{
		Name:                    name,
		Description:             description,
		Category:                category,
		RequiresBookingApproval: in.RequiresBookingApproval,
		Availability:            slots,
	}, nil
}

// Create stores a resource with its availability and links the requested employees. Ids that are not
// employees of the company are reported back; if none are, nothing is written.
func (s *Service) Create(ctx context.Context, companyID, actorUserID uuid.UUID, in CreateInput) (*Created, error) {
	resource, err := Normalize(in)
	if err != nil {
		return nil, err
	}
	actor, err := s.actor(ctx, companyID, actorUserID)
	if err != nil {
		return nil, err
	}
	if !authorization.CapabilitiesFor(actor.Role).CanCreateResource {
		return nil, ErrCannotCreate
	}

	resolution, err := Resolve(ctx, s.Store.Employees(), companyID, in.EmployeeIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(resolution.Valid) == 0 {
		return nil, ErrNoValidEmployees.WithDetails(map[string]interface{}{"failedEmployeeIds": resolution.Invalid})
	}

	resource.CompanyID = companyID
	out := &Created{Resource: resource, Employees: []domain.ResourceEmployee{}}
	out.FailedEmployeeIDs = append(out.FailedEmployeeIDs, resolution.Invalid...)

	err = s.Store.Transaction(ctx, func(tx domain.Store) error {
		if err := tx.Resources().Create(ctx, resource); err != nil {
			return err
		}
		for _, e := range resolution.Valid {
			link := &domain.ResourceEmployee{ResourceID: resource.ID, EmployeeID: e.ID}
			if err := tx.Resources().LinkEmployee(ctx, link); err != nil {
				log.Ctx(ctx).Warn().Err(err).
					Str("resource_id", resource.ID.String()).
					Str("employee_id", e.ID.String()).
					Msg("link resource employee")
				out.FailedEmployeeIDs = append(out.FailedEmployeeIDs, e.ID)
				continue
			}
			out.Employees = append(out.Employees, *link)
		}
		return nil
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}

// Get returns a resource with its availability and assignments. Employees only.
func (s *Service) Get(ctx context.Context, companyID, resourceID, actorUserID uuid.UUID) (*domain.Resource, error) {
	if _, err := s.actor(ctx, companyID, actorUserID); err != nil {
		return nil, err
	}
	r, err := s.Store.Resources().FindByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, apperror.Internal(err)
	}
	if r.CompanyID != companyID {
		return nil, ErrResourceNotFound
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, companyID, actorUserID uuid.UUID, page pagination.Params) ([]domain.Resource, pagination.Meta, error) {
	if _, err := s.actor(ctx, companyID, actorUserID); err != nil {
		return nil, pagination.Meta{}, err
	}
	rows, total, err := s.Store.Resources().ListByCompany(ctx, companyID, domain.Window{Skip: page.Skip, Take: page.Take})
	if err != nil {
		return nil, pagination.Meta{}, apperror.Internal(err)
	}
	return rows, page.Meta(total), nil
}

// actor is the acting user's employee record in a live company.
func (s *Service) actor(ctx context.Context, companyID, userID uuid.UUID) (*domain.CompanyEmployee, error) {
	if _, err := s.Store.Companies().FindByID(ctx, companyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, apperror.Internal(err)
	}
	e, err := s.Store.Employees().FindByCompanyAndUser(ctx, companyID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrNotAnEmployee
		}
		return nil, apperror.Internal(err)
	}
	return e, nil
}
