package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"stayops-be/internal/entity"
	"stayops-be/internal/pkg/serverutils"
)

func TestAccessTokenVerifiesWithMiddlewareKey(t *testing.T) {
	user := &entity.User{Id: uuid.New(), Role: entity.UserRoleOwner}

	signed, err := signAccessToken(user)
	assert.NoError(t, err)

	// The middleware must accept every token this service issues,
	// whether or not JWT_SECRET is configured.
	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return serverutils.JwtSecret(), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	if assert.True(t, ok) {
		assert.Equal(t, user.Id.String(), claims["user_id"])
	}
}
