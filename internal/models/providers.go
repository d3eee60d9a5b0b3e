package models

import (
	"time"

	"gorm.io/gorm"
)

// Provider is a team-scoped source record an item may reference (a shop,
// vendor, or supplier). Items may also carry a free-text provider name that
// never got promoted to a record.
type Provider struct {
	ID        string `gorm:"type:char(13);primaryKey" json:"id"`
	TeamID    string `gorm:"type:char(12);not null;uniqueIndex:idx_providers_team_name" json:"team_id"`
	Name      string `gorm:"type:varchar(250);not null;uniqueIndex:idx_providers_team_name" json:"name"`
	CreatedBy string `gorm:"type:char(12);" json:"created_by"`

	Team *Team `gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:CASCADE;" json:"team,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Provider) TableName() string {
	return "providers"
}

// ProviderRef is the outcome of resolving a free-text provider name: either a
// link to an existing record, or the literal text to store on the item.
type ProviderRef struct {
	LinkedID   *string `json:"linked_id"`
	ManualName string  `json:"manual_name"`
}
