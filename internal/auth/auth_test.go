package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("user-123", "jordan@energy.state.gov")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "jordan@energy.state.gov", claims.Email)
	assert.Equal(t, "gridbill", claims.Issuer)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Hour).Issue("user-123", "a@example.org")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	issuer := &TokenIssuer{secret: []byte("test-secret"), ttl: -time.Minute}

	token, err := issuer.Issue("user-123", "a@example.org")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDefaultTTL(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 0)
	assert.Equal(t, DefaultTokenTTL, issuer.ttl)
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "energy.state.gov", EmailDomain("jordan@Energy.State.GOV"))
	assert.Equal(t, "example.org", EmailDomain("  a@example.org "))
	assert.Equal(t, "", EmailDomain("no-at-sign"))
	assert.Equal(t, "", EmailDomain("trailing@"))
}

func TestAutoApprove(t *testing.T) {
	cases := []struct {
		domain string
		want   bool
	}{
		{"energy.state.gov", true},
		{"mit.edu", true},
		{"navy.mil", true},
		{"epri.com", true},
		{"ERCOT.com", true},
		{"gmail.com", false},
		{"example.org", false},
		{"gov", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AutoApprove(tc.domain), "domain %s", tc.domain)
	}
}
