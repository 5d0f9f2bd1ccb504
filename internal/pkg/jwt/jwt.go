package jwt

import (
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service issues and verifies the access tokens the API trusts for actor
// identity. Authentication itself (login, password handling) lives in a
// separate identity service; this backend only consumes its claims.
type Service interface {
	GenerateAccessToken(actor user.Actor) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(actor user.Actor) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":         actor.ID,
		"organization_id": actor.OrganizationID,
		"role":            string(actor.Role),
		"type":            "access",
		"exp":             expiresAt,
	}
	if actor.WorkerID != nil {
		claims["worker_id"] = *actor.WorkerID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}
