package jwt

import (
	"FoodShare-Backend/domain"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService()
	userID := uuid.NewString()

	token := svc.GenerateTokenUser(userID, domain.UserTypeIndividual)
	require.NotEmpty(t, token)

	gotID, gotRole, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, domain.UserTypeIndividual, gotRole)
}

func TestGetUserIDByToken_Invalid(t *testing.T) {
	svc := NewJWTService()

	_, _, err := svc.GetUserIDByToken("not-a-token")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, _, err = svc.GetUserIDByToken("")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}
