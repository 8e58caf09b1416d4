package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "fanfare-backend", TTL: time.Hour}
}

func TestIssueAndParse(t *testing.T) {
	j := newTestJWTer()
	token, err := j.Issue("user-1", "admin")
	require.NoError(t, err)

	claims, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := newTestJWTer()
	token, err := j.Issue("user-1", "member")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other"), Issuer: j.Issuer, TTL: j.TTL}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	j := newTestJWTer()
	other := &JWTer{Secret: j.Secret, Issuer: "someone-else", TTL: j.TTL}
	token, err := other.Issue("user-1", "member")
	require.NoError(t, err)

	_, err = j.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "fanfare-backend", TTL: -2 * time.Minute}
	token, err := j.Issue("user-1", "member")
	require.NoError(t, err)

	_, err = j.Parse(token)
	assert.Error(t, err)
}
