package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("payable 42: %w", NewDomainError("NOT_FOUND", "payable 42 not found"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConcurrencyConflict)
	assert.False(t, errors.Is(err, errors.New("NOT_FOUND")))

	var de *DomainError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, "payable 42 not found", de.Error())
}
