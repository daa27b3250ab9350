package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/oggyb/mentormatch/internal/errors"
)

type sample struct {
	CandidateID uint64 `json:"candidate_id" validate:"required"`
	Direction   string `json:"direction" validate:"required,oneof=right left"`
	Name        string `json:"name" validate:"omitempty,max=3"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(&sample{CandidateID: 1, Direction: "right"}))
}

func TestStruct_FieldMessages(t *testing.T) {
	err := Struct(&sample{Direction: "up", Name: "toolong"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "candidate_id is required", ve.Fields["candidate_id"])
	assert.Equal(t, "direction must be one of: right left", ve.Fields["direction"])
	assert.Equal(t, "name must be at most 3 characters", ve.Fields["name"])
}

func TestGet_Singleton(t *testing.T) {
	assert.Same(t, Get(), Get())
}
