package validation

import (
	"strings"

	"github.com/ikkim/bizdir-backend/internal/app/model"
)

// BusinessInput is the multipart submission for a new listing
type BusinessInput struct {
	Name          string `form:"name" json:"name" validate:"required,min=2,max=120"`
	Category      string `form:"category" json:"category" validate:"required,max=120"`
	SubCategory   string `form:"subCategory" json:"subCategory" validate:"omitempty,max=120"`
	Province      string `form:"province" json:"province" validate:"required,max=120"`
	City          string `form:"city" json:"city" validate:"required,max=120"`
	Area          string `form:"area" json:"area" validate:"omitempty,max=120"`
	PostalCode    string `form:"postalCode" json:"postalCode" validate:"omitempty,numeric,max=10"`
	Address       string `form:"address" json:"address" validate:"required,min=5,max=300"`
	Phone         string `form:"phone" json:"phone" validate:"required,min=7,max=20"`
	ContactPerson string `form:"contactPerson" json:"contactPerson" validate:"omitempty,max=80"`
	WhatsApp      string `form:"whatsapp" json:"whatsapp" validate:"omitempty,min=7,max=20"`
	Email         string `form:"email" json:"email" validate:"required,email,max=160"`
	Description   string `form:"description" json:"description" validate:"required,min=20,max=2000"`
	Website       string `form:"website" json:"website" validate:"omitempty,url,max=300"`
	Facebook      string `form:"facebook" json:"facebook" validate:"omitempty,url,max=300"`
	Instagram     string `form:"instagram" json:"instagram" validate:"omitempty,url,max=300"`
}

// Normalize trims every field in place
func (in *BusinessInput) Normalize() {
	for _, f := range []*string{
		&in.Name, &in.Category, &in.SubCategory, &in.Province, &in.City, &in.Area,
		&in.PostalCode, &in.Address, &in.Phone, &in.ContactPerson, &in.WhatsApp,
		&in.Email, &in.Description, &in.Website, &in.Facebook, &in.Instagram,
	} {
		*f = strings.TrimSpace(*f)
	}
	in.Email = strings.ToLower(in.Email)
}

// Validate normalizes the input and returns field errors, nil when valid
func (in *BusinessInput) Validate() map[string]string {
	in.Normalize()
	return Struct(in)
}

// ToModel builds a pending business. Slug and logo are filled in by the caller.
func (in *BusinessInput) ToModel() *model.Business {
	return &model.Business{
		Name:          in.Name,
		Category:      in.Category,
		SubCategory:   in.SubCategory,
		Province:      in.Province,
		City:          in.City,
		Area:          in.Area,
		PostalCode:    in.PostalCode,
		Address:       in.Address,
		Phone:         in.Phone,
		WhatsApp:      in.WhatsApp,
		Email:         in.Email,
		Description:   in.Description,
		ContactPerson: in.ContactPerson,
		Website:       in.Website,
		Facebook:      in.Facebook,
		Instagram:     in.Instagram,
		Status:        model.StatusPending,
	}
}

// ReviewInput is the JSON body of a new review. Rating is decoded as a float
// so that 4.5 is rejected instead of silently truncated.
type ReviewInput struct {
	BusinessID string  `json:"businessId" validate:"required,max=64"`
	Name       string  `json:"name" validate:"required,min=2,max=80"`
	Rating     float64 `json:"rating" validate:"required,integral,min=1,max=5"`
	Comment    string  `json:"comment" validate:"required,min=10,max=1000"`
}

func (in *ReviewInput) Normalize() {
	in.BusinessID = strings.TrimSpace(in.BusinessID)
	in.Name = strings.TrimSpace(in.Name)
	in.Comment = strings.TrimSpace(in.Comment)
}

func (in *ReviewInput) Validate() map[string]string {
	in.Normalize()
	return Struct(in)
}
