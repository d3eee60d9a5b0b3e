package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Item is a tracked record owned by exactly one team. CreatedBy records
// provenance only; visibility is always decided by TeamID.
type Item struct {
	ID     string `gorm:"type:char(13);primaryKey" json:"id"`
	TeamID string `gorm:"type:char(12);not null;index" json:"team_id"`
	Name   string `gorm:"type:varchar(250);not null" json:"name"`
	Notes  string `gorm:"type:text;" json:"notes"`

	// Provider link: either a reference to a team-scoped provider record, or
	// the literal text the user typed when no record matched.
	ProviderID   *string `gorm:"type:char(13);" json:"provider_id"`
	ProviderName string  `gorm:"type:varchar(250);" json:"provider_name"`

	Position  decimal.Decimal `gorm:"type:decimal(20,10);default:'0'" json:"position"`
	Metadata  datatypes.JSON  `gorm:"type:jsonb" json:"metadata"`
	CreatedBy string          `gorm:"type:char(12);" json:"created_by"`

	// Relationships
	Team     *Team     `gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:CASCADE;" json:"team,omitempty"`
	Provider *Provider `gorm:"foreignKey:ProviderID;references:ID" json:"provider,omitempty"`
	Tags     []*Tag    `gorm:"many2many:item_tags;joinForeignKey:ItemID;joinReferences:TagID" json:"tags,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Item) TableName() string {
	return "items"
}

// ItemUpdate is used for partial updates of an item. Tag names travel
// separately because they describe a desired state, not a field value.
type ItemUpdate struct {
	Name         *string          `json:"name"`
	Notes        *string          `json:"notes"`
	ProviderName *string          `json:"provider_name"`
	Position     *decimal.Decimal `json:"position"`
	Metadata     *datatypes.JSON  `json:"metadata"`
}
