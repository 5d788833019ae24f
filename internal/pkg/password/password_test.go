//go:build unit

package password_test

import (
	"testing"

	"tablebook/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.HashPassword("s3cret-pa55")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pa55", hash)

	assert.NoError(t, password.ComparePassword(hash, "s3cret-pa55"))
	assert.ErrorIs(t, password.ComparePassword(hash, "wrong"), password.ErrMismatch)
}

func TestEmptyInputRejected(t *testing.T) {
	_, err := password.HashPassword("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)

	assert.ErrorIs(t, password.ComparePassword("", "x"), password.ErrEmptyPassword)
	assert.ErrorIs(t, password.ComparePassword("hash", ""), password.ErrEmptyPassword)
}
