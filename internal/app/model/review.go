package model

import "time"

// Review belongs to a business only by BusinessID; there is no foreign key.
type Review struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	BusinessID string    `gorm:"type:varchar(64);index;not null" json:"businessId"`
	Name       string    `gorm:"not null" json:"name"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

func (Review) TableName() string {
	return "reviews"
}

// RatingAggregate is the count/average over a business's reviews.
type RatingAggregate struct {
	Avg   float64 `json:"ratingAvg"`
	Count int64   `json:"ratingCount"`
}
