package api

import (
	"errors"

	"github.com/google/uuid"

	"github.com/mealcoach/backend/internal/types"
)

// stubValidator accepts exactly one token and maps it to a fixed user.
type stubValidator struct {
	token  string
	userID uuid.UUID
}

func (v *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if token != v.token {
		return nil, errors.New("invalid token")
	}
	return &types.TokenClaims{UserID: v.userID, LoginID: "mealfan"}, nil
}
