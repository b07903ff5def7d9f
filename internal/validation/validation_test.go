package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type share struct {
	UserID string `json:"user_id" validate:"required"`
	Amount string `json:"amount" validate:"amount"`
}

type request struct {
	Description  string  `json:"description" validate:"max=10"`
	Amount       string  `json:"amount" validate:"required,money"`
	SplitType    string  `json:"split_type" validate:"split_type"`
	Email        string  `json:"email" validate:"omitempty,email"`
	Participants []share `json:"participants" validate:"required,min=1,dive"`
}

func TestStructValid(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	err = v.Struct(&request{
		Amount:       "12,50",
		SplitType:    "custom",
		Participants: []share{{UserID: "a", Amount: "0"}, {UserID: "b", Amount: "12.50"}},
	})
	assert.NoError(t, err)
}

func TestStructTranslatesFailures(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	err = v.Struct(&request{
		Description:  "far too long a description",
		Amount:       "-3",
		SplitType:    "thirds",
		Email:        "not-an-email",
		Participants: []share{{Amount: "x"}},
	})
	var verr *Error
	require.ErrorAs(t, err, &verr)

	assert.Equal(t, "amount must be a positive amount", verr.Fields["amount"])
	assert.Equal(t, "split_type must be one of equal, custom, percentage, payment", verr.Fields["split_type"])
	assert.Equal(t, "amount must be a non-negative amount", verr.Fields["participants[0].amount"])
	assert.Equal(t, "user_id is a required field", verr.Fields["participants[0].user_id"])
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "description")
	assert.Contains(t, verr.Error(), "amount must be a positive amount")
}

func TestStructMissingParticipants(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	err = v.Struct(&request{Amount: "10"})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "participants is a required field", verr.Fields["participants"])
}
