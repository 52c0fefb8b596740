package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/andrescamacho/starfleet-go/internal/adapters/security"
)

func TestBcryptHasher(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Episode2")
	require.NoError(t, err)

	assert.NotEqual(t, "Episode2", hash)
	assert.NoError(t, h.Compare(hash, "Episode2"))
	assert.ErrorIs(t, h.Compare(hash, "Episode3"), security.ErrPasswordMismatch)
	assert.Error(t, h.Compare("not-a-hash", "Episode2"))
}
