package categories

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInUseError(t *testing.T) {
	var err error = &InUseError{CategoryID: 3, Products: 12}
	assert.Equal(t, "category is referenced by 12 product(s) and cannot be deleted", err.Error())

	var inUse *InUseError
	require.True(t, errors.As(err, &inUse))
	assert.Equal(t, int64(3), inUse.CategoryID)
}
