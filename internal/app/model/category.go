package model

import "time"

type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Icon        string    `json:"icon,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Count       int64     `gorm:"default:0;not null" json:"count"` // businesses created under this category
	IsActive    bool      `gorm:"default:true;index" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Category) TableName() string {
	return "categories"
}
