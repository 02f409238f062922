package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-manager/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by [ValidateAndParseJWTToken] when the token
// signature does not match, the encoding is malformed, or a required claim
// is missing or invalid.
var ErrInvalidToken = errors.New("invalid token")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token for userID.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID
//   - ID        (jti): a random UUID, unique per issued token
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): only when tokenDuration is positive
//
// A zero tokenDuration yields a token that never expires and stays valid
// until it is revoked from the user's sessions.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("task-manager", userID, time.Hour, "secret")
func GenerateJWTToken(issuer string, userID uuid.UUID, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || signKey == "" || userID == uuid.Nil || tokenDuration < 0 {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:   issuer,
		Subject:  userID.String(),
		ID:       uuid.NewString(),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if tokenDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(tokenDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, RegisteredClaims: *claims, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check, when the claim is present
//   - Subject (sub) claim presence and conversion to a UUID
//
// It never consults any store: revocation is checked separately against the
// user's sessions. Every failure wraps [ErrInvalidToken].
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "task-manager")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.Token{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: error occurred validating and parsing token: %w", ErrInvalidToken, err)
	}

	userID, err := claims.GetUserID()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims.Token = token
	claims.SignedString = tokenString
	claims.UserID = userID

	return *claims, nil
}
