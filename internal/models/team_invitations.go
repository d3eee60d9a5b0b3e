package models

import (
	"time"
)

// InvitationStatus is the lifecycle state of a team invitation.
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// TeamInvitation is an invite to join a team. It targets an email address,
// not an account: the invited person may not have signed up yet. Acceptance
// binds the email to a principal by verified-email match.
type TeamInvitation struct {
	ID           string           `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID       string           `gorm:"type:char(12);not null;index" json:"team_id"`
	EmailInvited string           `gorm:"size:250;not null;index" json:"email_invited"`
	InvitedBy    string           `gorm:"type:char(12);not null" json:"invited_by"`
	Role         Role             `gorm:"type:varchar(50);not null" json:"role"`
	Status       InvitationStatus `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`

	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	// Relationships
	Team    *Team    `gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:CASCADE;" json:"team,omitempty"`
	Inviter *Profile `gorm:"foreignKey:InvitedBy;references:ID" json:"inviter,omitempty"`
}

func (TeamInvitation) TableName() string {
	return "team_invitations"
}
