// Package apitest wires the HTTP router to an in-memory store and a
// miniredis server for handler tests.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecovoiceapi/internal/api"
	"ecovoiceapi/internal/server"
	"ecovoiceapi/pkg/config"
	"ecovoiceapi/pkg/schemas"
	"ecovoiceapi/pkg/store"
	"ecovoiceapi/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap/zaptest"
	"google.golang.org/api/idtoken"
)

const GoogleClientId = "test-client-id"

type Env struct {
	H      *api.Handler
	Store  *store.MemoryStore
	Redis  *miniredis.Miniredis
	Router http.Handler

	// GoogleTokens maps accepted Google ID tokens to their payloads.
	GoogleTokens map[string]*idtoken.Payload
}

func New(t *testing.T) *Env {
	t.Helper()

	config.VAR.ORIGIN = "http://localhost:5173"
	config.VAR.JWT_SECRET = "test-secret"
	config.VAR.GOOGLE_CLIENT_ID = GoogleClientId
	config.VAR.R2_BUCKET = "report-images"
	config.VAR.R2_PUBLIC_URL = "https://images.example.com"

	mr := miniredis.RunT(t)
	redisCli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisCli.Close() })

	r2Cli := s3.New(s3.Options{
		Credentials:  credentials.NewStaticCredentialsProvider("access", "secret", ""),
		BaseEndpoint: aws.String("https://account.r2.cloudflarestorage.com"),
		UsePathStyle: true,
		Region:       "auto",
	})

	env := &Env{
		Store:        store.NewMemoryStore(),
		Redis:        mr,
		GoogleTokens: map[string]*idtoken.Payload{},
	}
	env.H = &api.Handler{
		Logger:    zaptest.NewLogger(t),
		Validate:  api.NewValidator(),
		Store:     env.Store,
		RedisCli:  redisCli,
		R2Presign: s3.NewPresignClient(r2Cli),
		VerifyGoogle: func(ctx context.Context, token string, audience string) (*idtoken.Payload, error) {
			payload, ok := env.GoogleTokens[token]
			if !ok || audience != GoogleClientId {
				return nil, errors.New("idtoken: invalid token")
			}
			return payload, nil
		},
	}
	env.Router = server.NewRouter(env.H)
	return env
}

// AddUser stores a user and returns it with its id set.
func (e *Env) AddUser(name string, points int, achievements ...string) *schemas.User {
	user := &schemas.User{Id: bson.NewObjectID(), Name: name, TotalPoints: points, Achievements: achievements}
	e.Store.PutUser(user)
	return user
}

func (e *Env) AddReport(t *testing.T, report *schemas.Report) *schemas.Report {
	t.Helper()
	if report.Status == "" {
		report.Status = config.STATUS_UNATTENDED
	}
	require.NoError(t, e.Store.InsertReport(context.Background(), report))
	return report
}

// Token returns an Authorization header value for uid.
func (e *Env) Token(t *testing.T, uid bson.ObjectID) string {
	t.Helper()
	token, err := utils.CreateNewAuthToken(uid).Sign()
	require.NoError(t, err)
	return token
}

func (e *Env) Do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	return e.Serve(req)
}

func (e *Env) Serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

func Decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
