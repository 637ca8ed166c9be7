package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type probe struct {
	ID string `validate:"required,loc_id"`
}

func TestLocIDRule(t *testing.T) {
	valid := []string{"A-01-04-2", "K-101", "DOCK-3", "205"}
	for _, id := range valid {
		assert.Empty(t, ValidateStruct(&probe{ID: id}), "expected %q to validate", id)
	}

	invalid := []string{"", "a-01-04-2", "A_01_04_2", "A-1-1-1x", "shelf nine"}
	for _, id := range invalid {
		errs := ValidateStruct(&probe{ID: id})
		assert.NotEmpty(t, errs, "expected %q to fail validation", id)
	}
}
