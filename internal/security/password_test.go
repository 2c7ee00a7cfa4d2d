package security_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/TurkiHQ/DevConnecter/internal/security"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := security.HashPassword("StrongP@ss1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "StrongP@ss1", hash)
	assert.True(t, security.CheckPassword(hash, "StrongP@ss1"))
	assert.False(t, security.CheckPassword(hash, "wrong"))
}

func TestHashSaltedPerCall(t *testing.T) {
	h1, err := security.HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := security.HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestGravatarDeterministic(t *testing.T) {
	a := security.GravatarURL("John@Example.com ")
	b := security.GravatarURL("john@example.com")
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "https://www.gravatar.com/avatar/"))
}
