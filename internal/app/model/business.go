package model

import (
	"strconv"
	"time"
)

type BusinessStatus string

const (
	StatusPending  BusinessStatus = "pending"
	StatusApproved BusinessStatus = "approved"
	StatusRejected BusinessStatus = "rejected"
)

type Business struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"type:varchar(160);uniqueIndex;not null" json:"slug"` // URL-safe, unique
	Category    string `gorm:"index;not null" json:"category"`                     // category slug
	SubCategory string `json:"subCategory,omitempty"`
	Province    string `gorm:"index;not null" json:"province"`
	City        string `gorm:"index;not null" json:"city"`
	Area        string `gorm:"index" json:"area,omitempty"`
	PostalCode  string `gorm:"type:varchar(20)" json:"postalCode,omitempty"`
	Address     string `gorm:"type:text" json:"address"`
	Phone       string `gorm:"type:varchar(30)" json:"phone"`
	WhatsApp    string `gorm:"column:whatsapp;type:varchar(30)" json:"whatsapp,omitempty"`
	Email       string `json:"email"`
	Description string `gorm:"type:text" json:"description"`

	ContactPerson string `json:"contactPerson,omitempty"`
	Website       string `json:"website,omitempty"`
	Facebook      string `json:"facebook,omitempty"`
	Instagram     string `json:"instagram,omitempty"`

	// Logo lives on the object store; LogoPublicID is its object key.
	LogoURL      string `json:"logoUrl,omitempty"`
	LogoPublicID string `json:"logoPublicId,omitempty"`

	Status BusinessStatus `gorm:"type:varchar(20);default:pending;index;not null" json:"status"`

	// Cache over reviews, rewritten after every review insert.
	RatingAvg   *float64 `json:"ratingAvg,omitempty"`
	RatingCount *int64   `json:"ratingCount,omitempty"`

	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
}

func (Business) TableName() string {
	return "businesses"
}

// ReviewKey is the string form reviews use to reference this business.
func (b *Business) ReviewKey() string {
	return strconv.FormatUint(uint64(b.ID), 10)
}
