package domain

import (
	"time"

	"github.com/euRezerv/api-sub000/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is a tenant. Soft-deleted companies are hidden from lookups by default.
type Company struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Country     string         `gorm:"column:country;not null" json:"country"`
	City        string         `gorm:"column:city;not null" json:"city"`
	Street      string         `gorm:"column:street;not null" json:"street"`
	PostalCode  string         `gorm:"column:postal_code;not null" json:"postalCode"`
	CreatedByID uuid.UUID      `gorm:"column:created_by_id;type:uuid;not null" json:"createdById"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"column:updated_at" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Company) TableName() string {
	return "companies"
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CompanyEmployee links a user to a company with a role. Unique per (company, user).
type CompanyEmployee struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID      `gorm:"column:company_id;type:uuid;not null;uniqueIndex:idx_company_employee" json:"companyId"`
	EmployeeID uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:idx_company_employee" json:"employeeId"`
	Role       constants.Role `gorm:"column:role;type:varchar(20);not null" json:"role"`
	CreatedAt  time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"column:updated_at" json:"updatedAt"`
}

func (CompanyEmployee) TableName() string {
	return "company_employees"
}

func (e *CompanyEmployee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
