package utils

import (
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/constvars"
	"healthmate-service/internal/pkg/exceptions"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	jwtClaimSubject = "sub"
	jwtClaimRole    = "role"
)

// GenerateActorJWT issues an HS256 token carrying the account id and role.
func GenerateActorJWT(actor models.Actor, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		jwtClaimSubject: actor.AccountID,
		jwtClaimRole:    actor.Role.String(),
		"iat":           time.Now().Unix(),
		"exp":           time.Now().Add(ttl).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", exceptions.WrapWithError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevAuthTokenInvalid)
	}
	return tokenString, nil
}

// ParseActorJWT verifies tokenString and returns the authenticated actor.
// Role strings are validated; an unknown role is rejected.
func ParseActorJWT(tokenString, secret string) (models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, exceptions.WrapWithoutError(constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthSigningMethod)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.Actor{}, exceptions.ErrTokenInvalid(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Actor{}, exceptions.ErrTokenInvalid(nil)
	}

	subject, _ := claims[jwtClaimSubject].(string)
	roleValue, _ := claims[jwtClaimRole].(string)
	if subject == "" || roleValue == "" {
		return models.Actor{}, exceptions.ErrTokenClaimsInvalid(nil)
	}

	if err := models.ValidateIdentifier(subject); err != nil {
		return models.Actor{}, exceptions.ErrTokenClaimsInvalid(err)
	}
	role, err := models.ParseRole(roleValue)
	if err != nil {
		return models.Actor{}, exceptions.ErrTokenClaimsInvalid(err)
	}

	return models.Actor{AccountID: subject, Role: role}, nil
}
