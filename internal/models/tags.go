package models

import (
	"time"
)

// Tag is a team-level label. Names are unique per team, case-insensitively;
// the stored spelling is whatever the creator first typed.
type Tag struct {
	ID        string `gorm:"type:char(13);primaryKey" json:"id"`
	TeamID    string `gorm:"type:char(12);not null;index" json:"team_id"`
	Name      string `gorm:"type:varchar(250);not null" json:"name"`
	Color     string `gorm:"type:varchar(6);default:'000000'" json:"color"`
	CreatedBy string `gorm:"type:char(12);" json:"created_by"`

	Team *Team `gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:CASCADE;" json:"team,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}

// ItemTag links items to tags. Deleting either side removes the link; the tag
// row itself survives unlinking because other items may reuse it.
type ItemTag struct {
	ItemID string `gorm:"type:char(13);primaryKey" json:"item_id"`
	TagID  string `gorm:"type:char(13);primaryKey" json:"tag_id"`

	Item *Item `gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:CASCADE;" json:"item,omitempty"`
	Tag  *Tag  `gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE;" json:"tag,omitempty"`
}

func (ItemTag) TableName() string {
	return "item_tags"
}
