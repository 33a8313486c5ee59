package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayDescription(t *testing.T) {
	desc, empty, summary := "Terraform modules", "", "Generated summary"

	assert.Equal(t, "Terraform modules", Repo{Description: &desc, AISummary: &summary}.DisplayDescription())
	assert.Equal(t, "Generated summary", Repo{Description: &empty, AISummary: &summary}.DisplayDescription())
	assert.Equal(t, "No description available", Repo{}.DisplayDescription())
}
