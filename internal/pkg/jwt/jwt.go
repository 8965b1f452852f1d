package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies HS256 access tokens issued by the external identity
// provider (the secret is shared with it). Token issuance, refresh and
// revocation all live on the provider side.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateAccessToken(userID string, expiresIn time.Duration) (token string, err error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken mints a token locally. Only used by tests and the
// occasional ops script; production tokens come from the identity provider.
func (j *JWTService) GenerateAccessToken(userID string, expiresIn time.Duration) (string, error) {
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    "access",
		"exp":     time.Now().Add(expiresIn).Unix(),
	})
	return tokenString, err
}
