package order

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusPending, StatusProcessing},
		{StatusPending, StatusShipped},
		{StatusPending, StatusCancelled},
		{StatusPending, StatusRefunded},
		{StatusProcessing, StatusShipped},
		{StatusProcessing, StatusCancelled},
		{StatusProcessing, StatusRefunded},
		{StatusShipped, StatusDelivered},
		{StatusShipped, StatusCancelled},
		{StatusShipped, StatusRefunded},
	}
	for _, tc := range legal {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	illegal := []struct{ from, to Status }{
		{StatusPending, StatusDelivered},
		{StatusProcessing, StatusDelivered},
		{StatusProcessing, StatusPending},
		{StatusShipped, StatusProcessing},
		{StatusDelivered, StatusRefunded},
		{StatusCancelled, StatusPending},
		{StatusRefunded, StatusProcessing},
	}
	for _, tc := range illegal {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []Status{StatusDelivered, StatusCancelled, StatusRefunded} {
		assert.True(t, s.Terminal(), string(s))
	}
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped} {
		assert.False(t, s.Terminal(), string(s))
	}
}

func TestTransition(t *testing.T) {
	t.Run("legal", func(t *testing.T) {
		require.NoError(t, Transition(StatusPending, StatusProcessing))
	})

	t.Run("ships straight from pending", func(t *testing.T) {
		require.NoError(t, Transition(StatusPending, StatusShipped))
		require.NoError(t, Transition(StatusShipped, StatusDelivered))
	})

	t.Run("illegal pair", func(t *testing.T) {
		err := Transition(StatusDelivered, StatusProcessing)
		var te *TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, StatusDelivered, te.From)
		assert.Equal(t, StatusProcessing, te.To)
		assert.Equal(t, "illegal status transition delivered -> processing", te.Error())
	})

	t.Run("unknown target", func(t *testing.T) {
		err := Transition(StatusPending, Status("teleported"))
		require.Error(t, err)
		var te *TransitionError
		assert.False(t, errors.As(err, &te))
		assert.Contains(t, err.Error(), "unknown order status")
	})
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("").Valid())
	assert.False(t, Status("paid").Valid())
}

func TestAddressMissingFields(t *testing.T) {
	full := Address{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Phone: "555-0100", Street: "1 Analytical Way", City: "London",
		State: "LDN", Zip: "E1 6AN", Country: "UK",
	}
	assert.Empty(t, full.MissingFields())

	partial := full
	partial.Phone = ""
	partial.Zip = ""
	assert.Equal(t, []string{"phone", "zip"}, partial.MissingFields())

	assert.Len(t, Address{}.MissingFields(), 9)
}
