package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"kursusku_backend/internals/configs"
	userModel "kursusku_backend/internals/features/users/auth/model"
)

func setTestSecrets(t *testing.T) {
	t.Helper()
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"
}

func TestIssueTokenPair_AccessClaims(t *testing.T) {
	setTestSecrets(t)
	user := &userModel.UserModel{
		ID:       uuid.New(),
		UserName: "budi",
		Email:    "budi@example.com",
		Role:     "admin",
	}

	access, refresh, err := IssueTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	tok, err := jwt.Parse(access, func(t *jwt.Token) (any, error) {
		return []byte(configs.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	require.Equal(t, user.ID.String(), claims["id"])
	require.Equal(t, "admin", claims["role"])
	require.Equal(t, "budi", claims["user_name"])
}

func TestParseRefreshToken_RoundTrip(t *testing.T) {
	setTestSecrets(t)
	user := &userModel.UserModel{ID: uuid.New(), UserName: "sari", Role: "user"}

	_, refresh, err := IssueTokenPair(user)
	require.NoError(t, err)

	got, err := ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, user.ID, got)
}

func TestParseRefreshToken_RejectsAccessToken(t *testing.T) {
	setTestSecrets(t)
	user := &userModel.UserModel{ID: uuid.New(), UserName: "sari", Role: "user"}

	access, _, err := IssueTokenPair(user)
	require.NoError(t, err)

	// An access token is signed with the other secret and has no typ claim.
	_, err = ParseRefreshToken(access)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestParseRefreshToken_RejectsGarbage(t *testing.T) {
	setTestSecrets(t)

	_, err := ParseRefreshToken("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = ParseRefreshToken("")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", hashed)

	require.NoError(t, CheckPasswordHash(hashed, "s3cret-password"))
	require.Error(t, CheckPasswordHash(hashed, "wrong-password"))
}
