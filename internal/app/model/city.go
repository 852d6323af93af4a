package model

import "time"

type City struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Province  string    `gorm:"index" json:"province,omitempty"`
	Country   string    `gorm:"default:Pakistan;not null" json:"country"`
	IsActive  bool      `gorm:"default:true;index" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func (City) TableName() string {
	return "cities"
}
