//go:build unit

package password_test

import (
	"testing"

	"reservation-engine/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.HashPassword("correct horse")
	require.NoError(t, err)

	require.NoError(t, password.ComparePassword(hash, "correct horse"))
	require.ErrorIs(t, password.ComparePassword(hash, "wrong horse"), password.ErrComparisonFailed)
	require.ErrorIs(t, password.ComparePassword("", "x"), password.ErrInvalidPassword)

	_, err = password.HashPassword("")
	require.ErrorIs(t, err, password.ErrInvalidPassword)
}

func TestPlaceholderHash(t *testing.T) {
	a, err := password.PlaceholderHash()
	require.NoError(t, err)
	b, err := password.PlaceholderHash()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Error(t, password.ComparePassword(a, ""))
	assert.Error(t, password.ComparePassword(a, "password"))
}
