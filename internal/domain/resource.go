package domain

import (
	"time"

	"github.com/euRezerv/api-sub000/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Resource is a bookable entity owned by one company.
type Resource struct {
	ID                      uuid.UUID                  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanyID               uuid.UUID                  `gorm:"column:company_id;type:uuid;not null;index" json:"companyId"`
	Name                    string                     `gorm:"column:name;not null" json:"name"`
	Description             *string                    `gorm:"column:description" json:"description"`
	Category                constants.ResourceCategory `gorm:"column:category;type:varchar(20);not null" json:"category"`
	RequiresBookingApproval bool                       `gorm:"column:requires_booking_approval;not null;default:false" json:"requiresBookingApproval"`
	Availability            []ResourceAvailability     `gorm:"foreignKey:ResourceID" json:"availability"`
	Employees               []ResourceEmployee         `gorm:"foreignKey:ResourceID" json:"employees,omitempty"`
	CreatedAt               time.Time                  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt               time.Time                  `gorm:"column:updated_at" json:"updatedAt"`
}

func (Resource) TableName() string {
	return "resources"
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ResourceAvailability is one weekly window. At most one per day per resource.
type ResourceAvailability struct {
	ID         uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ResourceID uuid.UUID           `gorm:"column:resource_id;type:uuid;not null;uniqueIndex:idx_resource_day" json:"resourceId"`
	DayOfWeek  constants.DayOfWeek `gorm:"column:day_of_week;type:varchar(10);not null;uniqueIndex:idx_resource_day" json:"dayOfWeek"`
	StartTime  datatypes.Time      `gorm:"column:start_time;not null" json:"startTime"`
	EndTime    datatypes.Time      `gorm:"column:end_time;not null" json:"endTime"`
}

func (ResourceAvailability) TableName() string {
	return "resource_availabilities"
}

func (a *ResourceAvailability) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ResourceEmployee assigns a company employee record (not a user) to a resource.
type ResourceEmployee struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ResourceID uuid.UUID `gorm:"column:resource_id;type:uuid;not null;uniqueIndex:idx_resource_employee" json:"resourceId"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:idx_resource_employee" json:"employeeId"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (ResourceEmployee) TableName() string {
	return "resource_employees"
}

func (e *ResourceEmployee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
