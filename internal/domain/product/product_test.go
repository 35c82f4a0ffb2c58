package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalStock(t *testing.T) {
	assert.Equal(t, 0, TotalStock(nil))
	assert.Equal(t, 12, TotalStock([]Variant{
		{Size: SizeS, Color: "Black", Stock: 5},
		{Size: SizeM, Color: "Black", Stock: 0},
		{Size: SizeL, Color: "White", Stock: 7},
	}))
}

func TestReviewAggregate(t *testing.T) {
	t.Run("no reviews", func(t *testing.T) {
		rating, count := ReviewAggregate(nil)
		assert.Equal(t, 0.0, rating)
		assert.Equal(t, 0, count)
	})

	t.Run("mean of ratings", func(t *testing.T) {
		rating, count := ReviewAggregate([]Review{
			{Rating: 5}, {Rating: 4}, {Rating: 3},
		})
		assert.Equal(t, 4.0, rating)
		assert.Equal(t, 3, count)
	})
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusActive, StatusArchived, StatusDeleted} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("hidden").Valid())
	assert.False(t, Status("").Valid())
}

func TestSizeValid(t *testing.T) {
	for _, s := range []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL, SizeOneSize} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Size("XXXL").Valid())
	assert.False(t, Size("one size").Valid())
}
