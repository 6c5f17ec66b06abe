package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderPayload struct {
	CustomerEmail string `validate:"required,email"`
	Items         []item `validate:"required,min=1,dive"`
}

type item struct {
	ProductID int64 `validate:"required,gt=0"`
	Quantity  int   `validate:"required,gte=1"`
}

func TestValidate_OK(t *testing.T) {
	p := orderPayload{
		CustomerEmail: "shopper@example.com",
		Items:         []item{{ProductID: 1, Quantity: 2}},
	}
	assert.NoError(t, Validate(p))
}

func TestValidate_MissingEmail(t *testing.T) {
	p := orderPayload{Items: []item{{ProductID: 1, Quantity: 1}}}

	err := Validate(p)
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields(), "CustomerEmail")
	assert.Equal(t, "is required", valErr.Fields()["CustomerEmail"])
}

func TestValidate_EmptyItems(t *testing.T) {
	p := orderPayload{CustomerEmail: "shopper@example.com", Items: []item{}}

	err := Validate(p)
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Error(), "Items")
}

func TestValidate_BadQuantity(t *testing.T) {
	p := orderPayload{
		CustomerEmail: "shopper@example.com",
		Items:         []item{{ProductID: 1, Quantity: 0}},
	}

	err := Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Quantity")
}
