package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile represents an authenticated principal. Accounts and credentials are
// issued elsewhere; a profile row is created on first sight of a verified
// email.
type Profile struct {
	ID    string `gorm:"type:char(12);primaryKey" json:"id"`
	Email string `gorm:"size:250;not null;unique" json:"email"`
	Name  string `gorm:"type:varchar(250);" json:"name"`

	// Team relationships
	Teams []*Team `gorm:"many2many:team_members;foreignKey:ID;joinForeignKey:MemberID;References:ID;joinReferences:TeamID" json:"teams,omitempty"`
	// Membership rows for this profile
	TeamMemberships []*TeamMember `gorm:"foreignKey:MemberID;references:ID" json:"team_memberships,omitempty"`
	// Teams owned by this profile
	OwnedTeams []*Team `gorm:"foreignKey:OwnerID;references:ID" json:"owned_teams,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}
