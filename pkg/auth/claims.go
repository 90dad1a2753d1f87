package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/greenhollow/leafmarket-pricing/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID     uuid.UUID
	BusinessID *uuid.UUID
	Role       enums.ActorRole
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued by the marketplace
// auth layer and accepted by this service.
type AccessTokenClaims struct {
	UserID     uuid.UUID       `json:"user_id"`
	BusinessID *uuid.UUID      `json:"business_id,omitempty"`
	Role       enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}
