package auth_test

import (
	"context"
	"net/http"
	"testing"

	"ecovoiceapi/internal/apitest"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

type loginResponse struct {
	Token          string `json:"token"`
	AccountCreated bool   `json:"accountCreated"`
	EmailMissing   bool   `json:"emailMissing"`
	User           struct {
		Id           string   `json:"id"`
		Name         string   `json:"name"`
		Email        string   `json:"email"`
		TotalPoints  int      `json:"totalPoints"`
		Achievements []string `json:"achievements"`
	} `json:"user"`
}

func googlePayload(sub string, claims map[string]any) *idtoken.Payload {
	return &idtoken.Payload{Subject: sub, Claims: claims}
}

func TestGoogleLoginCreatesUserOnce(t *testing.T) {
	env := apitest.New(t)
	env.GoogleTokens["good"] = googlePayload("g-123", map[string]any{"email": "Ada@Example.com", "name": "Ada Lovelace"})

	w := env.Do("POST", "/auth/google-login", map[string]any{"token": "good"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := apitest.Decode[loginResponse](t, w)
	require.True(t, first.AccountCreated)
	require.Equal(t, "Ada Lovelace", first.User.Name)
	require.Equal(t, "ada@example.com", first.User.Email)
	require.Equal(t, 0, first.User.TotalPoints)
	require.Empty(t, first.User.Achievements)
	require.NotEmpty(t, first.Token)

	w = env.Do("POST", "/auth/google-login", map[string]any{"token": "good"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	second := apitest.Decode[loginResponse](t, w)
	require.False(t, second.AccountCreated)
	require.Equal(t, first.User.Id, second.User.Id)

	users, err := env.Store.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)

	// the issued token opens a session
	w = env.Do("GET", "/user", nil, first.Token)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGoogleLoginFallbackName(t *testing.T) {
	env := apitest.New(t)
	env.GoogleTokens["noname"] = googlePayload("g-9", map[string]any{"email": "x@example.com"})

	w := env.Do("POST", "/auth/google-login", map[string]any{"token": "noname"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, apitest.Decode[loginResponse](t, w).User.Name)
}

func TestGoogleLoginRejects(t *testing.T) {
	env := apitest.New(t)
	env.GoogleTokens["noemail"] = googlePayload("g-1", map[string]any{})

	w := env.Do("POST", "/auth/google-login", map[string]any{"token": "forged"}, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.Do("POST", "/auth/google-login", map[string]any{"token": "noemail"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.True(t, apitest.Decode[loginResponse](t, w).EmailMissing)

	w = env.Do("POST", "/auth/google-login", map[string]any{}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	users, _ := env.Store.ListUsers(context.Background())
	require.Empty(t, users)
}

func TestLogoutRevokesToken(t *testing.T) {
	env := apitest.New(t)
	ada := env.AddUser("Ada", 0)
	token := env.Token(t, ada.Id)
	other := env.Token(t, ada.Id)

	require.Equal(t, http.StatusOK, env.Do("GET", "/user", nil, token).Code)

	w := env.Do("POST", "/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, http.StatusUnauthorized, env.Do("GET", "/user", nil, token).Code)
	require.Equal(t, http.StatusUnauthorized, env.Do("POST", "/auth/logout", nil, token).Code)

	// other sessions of the same user survive
	require.Equal(t, http.StatusOK, env.Do("GET", "/user", nil, other).Code)
}
