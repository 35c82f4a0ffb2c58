package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsufficientStockError(t *testing.T) {
	var err error = &InsufficientStockError{
		ProductName: "Linen Shirt",
		Size:        "M",
		Color:       "Black",
		Requested:   3,
	}
	assert.Equal(t, "insufficient stock for Linen Shirt (M/Black): requested 3", err.Error())

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 3, stockErr.Requested)
}

// Guards run before the first query, so a nil pool is fine here.
func TestCreateRejectsEmptyOrder(t *testing.T) {
	repo := NewRepo(nil, testPricing)

	_, err := repo.Create(context.Background(), CreateOrderInput{
		PaymentMethod: "cod",
		Shipping:      sampleOrder().Shipping,
	})
	require.ErrorIs(t, err, ErrEmptyOrder)
}

func TestCreateRejectsIncompleteAddress(t *testing.T) {
	repo := NewRepo(nil, testPricing)

	addr := sampleOrder().Shipping
	addr.City = ""
	addr.Zip = ""
	_, err := repo.Create(context.Background(), CreateOrderInput{
		PaymentMethod: "cod",
		Shipping:      addr,
		Items:         []CreateItemInput{{ProductID: 1, VariantID: 1, Quantity: 1}},
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyOrder)
	assert.Contains(t, err.Error(), "missing address fields")
	assert.Contains(t, err.Error(), "city")
	assert.Contains(t, err.Error(), "zip")
}

func TestCreateRejectsZeroQuantity(t *testing.T) {
	repo := NewRepo(nil, testPricing)

	_, err := repo.Create(context.Background(), CreateOrderInput{
		PaymentMethod: "cod",
		Shipping:      sampleOrder().Shipping,
		Items:         []CreateItemInput{{ProductID: 1, VariantID: 1, Quantity: 0}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}
