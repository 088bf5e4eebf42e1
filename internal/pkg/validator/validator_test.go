package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email    string `validate:"required,email"`
	Timezone string `validate:"timezone"`
	Date     string `validate:"ymd"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Email: "a@b.co", Timezone: "America/Bogota", Date: "2025-03-10"}))

	errs := Validate(sample{Email: "nope", Timezone: "Mars/Olympus", Date: "10/03/2025"})
	assert.Equal(t, "email", errs["Email"])
	assert.Equal(t, "timezone", errs["Timezone"])
	assert.Equal(t, "ymd", errs["Date"])
}
