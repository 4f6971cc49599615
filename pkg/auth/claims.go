package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/harborview/procurestock-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	Role           enums.MemberRole
	JTI            string
}

// AccessTokenClaims represents the typed JWT issued to clients. The acting
// user and their organization ride on every request; downstream writes stamp
// them as created_by/updated_by and tenant scope.
type AccessTokenClaims struct {
	UserID         uuid.UUID        `json:"user_id"`
	OrganizationID uuid.UUID        `json:"organization_id"`
	Role           enums.MemberRole `json:"role"`
	jwt.RegisteredClaims
}
