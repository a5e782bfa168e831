package identity

import (
	"hotncold-server/pkg/config"
	"hotncold-server/pkg/errutil"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier maps an opaque bearer credential to an ExternalIdentity.
type TokenVerifier interface {
	VerifyToken(raw string) (*ExternalIdentity, error)
}

type tokenClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	secret []byte
	issuer string
}

func NewTokenVerifier(cfg *config.Config) TokenVerifier {
	return &jwtVerifier{
		secret: []byte(cfg.Auth.Secret),
		issuer: cfg.Auth.Issuer,
	}
}

func (v *jwtVerifier) VerifyToken(raw string) (*ExternalIdentity, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errutil.Unauthorized("invalid or expired token", errutil.WithErr(err))
	}

	if !token.Valid || claims.Subject == "" {
		return nil, errutil.Unauthorized("invalid or expired token")
	}

	return &ExternalIdentity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
