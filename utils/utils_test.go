package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("12")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidateStruct(t *testing.T) {
	type request struct {
		Name string `validate:"required"`
	}
	assert.Error(t, ValidateStruct(&request{}))
	assert.NoError(t, ValidateStruct(&request{Name: "x"}))
}
