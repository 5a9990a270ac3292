package utils

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ecovoiceapi/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type AuthToken struct {
	Uid string `json:"uid"`
	jwt.RegisteredClaims
}

func CreateNewAuthToken(uid bson.ObjectID) *AuthToken {

	token := AuthToken{Uid: uid.Hex()}
	token.refreshToken()
	return &token

}

func ValidateAuthToken(r *http.Request) (*AuthToken, error) {

	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, errors.New("missing token")
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New("invalid token format")
	}
	tokenRaw := parts[1]

	// validate token
	var authToken AuthToken
	token, err := jwt.ParseWithClaims(tokenRaw, &authToken, func(token *jwt.Token) (any, error) {
		return []byte(config.VAR.JWT_SECRET), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(config.ISSUER))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	// error if expired
	if authToken.ExpiresAt == nil || time.Now().UTC().After(authToken.ExpiresAt.Time) {
		return nil, errors.New("token expired")
	}

	return &authToken, nil

}

func (authToken *AuthToken) Sign() (string, error) {

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authToken)
	key := []byte(config.VAR.JWT_SECRET)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", err
	}

	return "Bearer " + signed, nil

}

func (authToken *AuthToken) GetUidObjectId() (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(authToken.Uid)
}

// TimeLeft is how long until the token expires.
func (authToken *AuthToken) TimeLeft() time.Duration {
	return authToken.ExpiresAt.Sub(time.Now().UTC())
}

func (authToken *AuthToken) Refresh() {

	//if expiring in < 1 month refresh token
	if authToken.TimeLeft() <= time.Hour*24*7*4 {
		authToken.refreshToken()
	}

}

func (authToken *AuthToken) refreshToken() {

	now := time.Now().UTC()
	authToken.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(now.AddDate(0, 3, 0)), //3 months
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    config.ISSUER,
	}

}
