package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedRequest struct {
	Query string `validate:"required,max=10"`
	Mode  string `validate:"omitempty,oneof=fast full"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(validatedRequest{Query: "ok"}))

	err := ValidateStruct(validatedRequest{})
	require.Error(t, err)
	assert.Equal(t, "query is required", err.Error())

	err = ValidateStruct(validatedRequest{Query: strings.Repeat("x", 11)})
	require.Error(t, err)
	assert.Equal(t, "query must be at most 10 characters", err.Error())
}

func TestValidateStruct_JoinsMultipleFields(t *testing.T) {
	err := ValidateStruct(validatedRequest{Mode: "slow"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")
	assert.Contains(t, err.Error(), "mode must be one of: fast full")
	assert.Contains(t, err.Error(), "; ")
}
