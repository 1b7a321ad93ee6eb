package services

import (
	"testing"

	"agora-market/models"

	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	req := require.New(t)
	InitAuth("test-secret", 1)

	user := models.User{ID: 42, Username: "alice"}
	token, err := GenerateToken(user)
	req.NoError(err)
	req.NotEmpty(token)

	claims, err := ParseToken(token)
	req.NoError(err)
	req.Equal(uint(42), claims.UserID)
	req.Equal("alice", claims.Username)
}

func TestToken_WrongSecretRejected(t *testing.T) {
	req := require.New(t)
	InitAuth("secret-one", 1)
	token, err := GenerateToken(models.User{ID: 1, Username: "alice"})
	req.NoError(err)

	InitAuth("secret-two", 1)
	_, err = ParseToken(token)
	req.Error(err)
}

func TestToken_GarbageRejected(t *testing.T) {
	InitAuth("test-secret", 1)
	_, err := ParseToken("not.a.token")
	require.Error(t, err)
}
