package models

import (
	"time"

	"gorm.io/gorm"
)

// Team represents a team entity in the database. Every first-class record
// (item, tag, provider) is scoped to exactly one team.
type Team struct {
	ID          string `gorm:"type:char(12);primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(250);not null;uniqueIndex:idx_teams_owner_name" json:"name"`
	Description string `gorm:"type:varchar(250);" json:"description"`
	OwnerID     string `gorm:"type:char(12);not null;uniqueIndex:idx_teams_owner_name" json:"owner_id"`

	// User relationships
	Owner   *Profile   `gorm:"foreignKey:OwnerID;references:ID" json:"owner,omitempty"`
	Members []*Profile `gorm:"many2many:team_members;foreignKey:ID;joinForeignKey:TeamID;References:ID;joinReferences:MemberID" json:"members,omitempty"`

	// Team membership details
	Memberships []*TeamMember `gorm:"foreignKey:TeamID;references:ID" json:"memberships,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}

// TeamUpdate is used for partial updates on a team.
type TeamUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ActiveTeam is the team a request operates against, together with the
// requesting principal's role in it. It is computed once per request and
// passed explicitly down the call chain.
type ActiveTeam struct {
	Team Team `json:"team"`
	Role Role `json:"role"`
}
