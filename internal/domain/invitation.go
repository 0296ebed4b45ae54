package domain

import (
	"time"

	"github.com/euRezerv/api-sub000/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyEmployeeInvitation is a time-boxed offer for a user to join a company with a role.
// Once it leaves PENDING it is an immutable history record.
type CompanyEmployeeInvitation struct {
	ID            uuid.UUID                  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanyID     uuid.UUID                  `gorm:"column:company_id;type:uuid;not null;index" json:"companyId"`
	SenderID      uuid.UUID                  `gorm:"column:sender_id;type:uuid;not null;index:idx_invitation_pair" json:"senderId"`
	InvitedUserID uuid.UUID                  `gorm:"column:invited_user_id;type:uuid;not null;index:idx_invitation_pair" json:"invitedUserId"`
	Role          constants.Role             `gorm:"column:role;type:varchar(20);not null" json:"role"`
	Status        constants.InvitationStatus `gorm:"column:status;type:varchar(20);not null;default:'PENDING'" json:"status"`
	ExpiresAt     time.Time                  `gorm:"column:expires_at;not null" json:"expiresAt"`
	CreatedAt     time.Time                  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time                  `gorm:"column:updated_at" json:"updatedAt"`
}

func (CompanyEmployeeInvitation) TableName() string {
	return "company_employee_invitations"
}

func (i *CompanyEmployeeInvitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IsExpiredAt reports whether expiresAt has passed at now, regardless of the stored status.
func (i *CompanyEmployeeInvitation) IsExpiredAt(now time.Time) bool {
	return i.ExpiresAt.Before(now)
}

// EffectiveStatus is EXPIRED for a non-terminal invitation past its expiresAt, else the stored status.
func (i *CompanyEmployeeInvitation) EffectiveStatus(now time.Time) constants.InvitationStatus {
	if !i.Status.IsTerminal() && i.IsExpiredAt(now) {
		return constants.InvitationExpired
	}
	return i.Status
}
