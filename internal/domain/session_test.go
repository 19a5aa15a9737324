package domain_test

import (
	"testing"

	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUsername(t *testing.T) {
	t.Parallel()

	t.Run("trims and lowercases", func(t *testing.T) {
		t.Parallel()

		got, err := domain.NormalizeUsername("  Maria_Silva1 ")
		require.NoError(t, err)
		assert.Equal(t, "maria_silva1", got)
	})

	t.Run("rejects disallowed characters", func(t *testing.T) {
		t.Parallel()

		for _, username := range []string{"", "   ", "maria silva", "maria-silva", "maria!", "josé"} {
			_, err := domain.NormalizeUsername(username)
			assert.ErrorIs(t, err, domain.ErrInvalidUsername, "username %q", username)
		}
	})
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	s1, err := domain.NewSession("Ana")
	require.NoError(t, err)
	s2, err := domain.NewSession("Ana")
	require.NoError(t, err)

	assert.Equal(t, "ana", s1.Username)
	assert.NotEqual(t, s1.Token, s2.Token, "each session gets a fresh token")

	// Same username, different sessions: the owners must not collide.
	assert.NotEqual(t, s1.Owner(), s2.Owner())
	assert.Equal(t, "ana_"+s1.Token.String(), s1.Owner())
}

func TestValidateOwner(t *testing.T) {
	t.Parallel()

	session, err := domain.NewSession("joao_22")
	require.NoError(t, err)
	assert.NoError(t, domain.ValidateOwner(session.Owner()))

	for _, owner := range []string{
		"",
		"joao",
		"joao_notauuid",
		"Joao_11111111-2222-3333-4444-555555555555",
		"../../etc/passwd",
	} {
		assert.ErrorIs(t, domain.ValidateOwner(owner), domain.ErrInvalidOwner, "owner %q", owner)
	}
}

func TestOwnerUsername(t *testing.T) {
	t.Parallel()

	session, err := domain.NewSession("maria_silva")
	require.NoError(t, err)
	assert.Equal(t, "maria_silva", domain.OwnerUsername(session.Owner()))

	// Malformed owners come back unchanged.
	assert.Equal(t, "not-an-owner", domain.OwnerUsername("not-an-owner"))
}
