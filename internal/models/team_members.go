package models

import (
	"time"
)

// TeamMember represents the many-to-many relationship between profiles and
// teams. The (team, member) pair is the primary key and never changes after
// creation; only the role may be updated.
type TeamMember struct {
	TeamID   string `gorm:"type:char(12);primaryKey" json:"team_id"`
	MemberID string `gorm:"type:char(12);primaryKey" json:"member_id"`
	Role     Role   `gorm:"type:varchar(50);not null" json:"role"`

	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	// Relationships
	Team    *Team    `gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:CASCADE;" json:"team,omitempty"`
	Profile *Profile `gorm:"foreignKey:MemberID;references:ID;constraint:OnDelete:CASCADE;" json:"profile,omitempty"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
