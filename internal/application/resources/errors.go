package resources

import "github.com/euRezerv/api-sub000/internal/pkg/apperror"

var (
	ErrCompanyNotFound  = apperror.NotFound("Company not found")
	ErrResourceNotFound = apperror.NotFound("Resource not found")
	ErrNotAnEmployee    = apperror.Forbidden("You are not an employee of this company")
	ErrCannotCreate     = apperror.Forbidden("You are not allowed to create resources in this company")

	ErrNameRequired       = apperror.Validation("Name is required")
	ErrInvalidCategory    = apperror.Validation("Invalid category")
	ErrAvailabilityCount  = apperror.Validation("Availability must contain between 1 and 7 days")
	ErrInvalidDayOfWeek   = apperror.Validation("Invalid day of week")
	ErrDuplicateDayOfWeek = apperror.Validation("Duplicate day of week in availability")
	ErrInvalidTime        = apperror.Validation("Invalid time, expected HH:MM")
	ErrStartNotBeforeEnd  = apperror.Validation("Start time must be before end time")
	ErrNoValidEmployees   = apperror.Validation("No valid employees found")
)
