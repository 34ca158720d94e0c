package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	plain, hashed, expire, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, plain, 40, "20 random bytes hex encoded")
	assert.NotEqual(t, plain, hashed)
	assert.Equal(t, HashResetToken(plain), hashed, "stored hash matches lookup hash")
	assert.WithinDuration(t, time.Now().Add(ResetTokenTTL), expire, time.Minute)
}

func TestGenerateResetTokenUnique(t *testing.T) {
	a, _, _, err := GenerateResetToken()
	require.NoError(t, err)
	b, _, _, err := GenerateResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
