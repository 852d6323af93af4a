package validation

import (
	"testing"

	"github.com/ikkim/bizdir-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBusinessInput() BusinessInput {
	return BusinessInput{
		Name:        "  Al-Noor Café #1 ",
		Category:    "restaurants",
		Province:    "Punjab",
		City:        "Lahore",
		Address:     "12 Main Boulevard, Gulberg",
		Phone:       "0300-1234567",
		Email:       " Owner@Example.com ",
		Description: "Family restaurant serving karahi and BBQ since 1998",
	}
}

func TestBusinessInput_Valid(t *testing.T) {
	in := validBusinessInput()
	assert.Nil(t, in.Validate())
	assert.Equal(t, "Al-Noor Café #1", in.Name)
	assert.Equal(t, "owner@example.com", in.Email)

	b := in.ToModel()
	assert.Equal(t, model.StatusPending, b.Status)
	assert.Empty(t, b.Slug)
	assert.Equal(t, "Lahore", b.City)
}

func TestBusinessInput_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BusinessInput)
		field  string
		msg    string
	}{
		{"missing name", func(in *BusinessInput) { in.Name = "   " }, "name", "This field is required"},
		{"short name", func(in *BusinessInput) { in.Name = "A" }, "name", "Must be at least 2 characters"},
		{"missing city", func(in *BusinessInput) { in.City = "" }, "city", "This field is required"},
		{"bad email", func(in *BusinessInput) { in.Email = "not-an-email" }, "email", "Enter a valid email address"},
		{"short description", func(in *BusinessInput) { in.Description = "Too short" }, "description", "Must be at least 20 characters"},
		{"bad website", func(in *BusinessInput) { in.Website = "example" }, "website", "Enter a valid URL"},
		{"letters in postal code", func(in *BusinessInput) { in.PostalCode = "54OOO" }, "postalCode", "Must contain digits only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validBusinessInput()
			tt.mutate(&in)

			fields := in.Validate()
			require.NotNil(t, fields)
			assert.Equal(t, tt.msg, fields[tt.field])
		})
	}
}

func TestBusinessInput_ReportsEveryInvalidField(t *testing.T) {
	in := BusinessInput{}
	fields := in.Validate()

	for _, key := range []string{"name", "category", "province", "city", "address", "phone", "email", "description"} {
		assert.Contains(t, fields, key)
	}
	assert.NotContains(t, fields, "website")
	assert.NotContains(t, fields, "subCategory")
}

func TestReviewInput_Validate(t *testing.T) {
	valid := ReviewInput{BusinessID: "42", Name: "Ayesha", Rating: 4, Comment: "Lovely food and service"}

	tests := []struct {
		name   string
		mutate func(*ReviewInput)
		field  string
		msg    string
	}{
		{"valid", func(in *ReviewInput) {}, "", ""},
		{"rating too low", func(in *ReviewInput) { in.Rating = -1 }, "rating", "Must be at least 1"},
		{"rating missing", func(in *ReviewInput) { in.Rating = 0 }, "rating", "This field is required"},
		{"rating too high", func(in *ReviewInput) { in.Rating = 6 }, "rating", "Must be at most 5"},
		{"fractional rating", func(in *ReviewInput) { in.Rating = 4.5 }, "rating", "Must be a whole number"},
		{"short comment", func(in *ReviewInput) { in.Comment = "  meh    " }, "comment", "Must be at least 10 characters"},
		{"blank business", func(in *ReviewInput) { in.BusinessID = " " }, "businessId", "This field is required"},
		{"short name", func(in *ReviewInput) { in.Name = "A" }, "name", "Must be at least 2 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			fields := in.Validate()
			if tt.field == "" {
				assert.Nil(t, fields)
				return
			}
			require.NotNil(t, fields)
			assert.Equal(t, tt.msg, fields[tt.field])
		})
	}
}
