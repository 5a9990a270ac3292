package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"ecovoiceapi/pkg/config"
	"ecovoiceapi/pkg/store"
	"ecovoiceapi/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/api/idtoken"
)

// GoogleVerifier checks a Google ID token, idtoken.Validate in production.
type GoogleVerifier func(ctx context.Context, token string, audience string) (*idtoken.Payload, error)

type Handler struct {
	Logger       *zap.Logger
	Validate     *validator.Validate
	Store        store.Store
	RedisCli     *redis.Client // optional
	R2Presign    *s3.PresignClient
	VerifyGoogle GoogleVerifier
}

// ErrSessionBackend wraps failures of the revocation lookup. The token
// itself may be fine, so it is not answered as unauthenticated.
var ErrSessionBackend = errors.New("session backend unavailable")

type ResParams struct {
	W       http.ResponseWriter
	R       *http.Request
	Code    int
	Err     error
	ReqData any // for logs
	ResData any
}

func (h *Handler) AuthMiddleware(f http.HandlerFunc) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		resParams := &ResParams{W: w, R: r}
		session, err := h.sessionFromRequest(r)
		if errors.Is(err, ErrSessionBackend) {
			resParams.ResData = &struct {
				Unavailable bool `json:"unavailable"`
			}{Unavailable: true}
			resParams.Err = err
			resParams.Code = http.StatusServiceUnavailable
			h.Res(resParams)
			return
		} else if err != nil {
			resParams.ResData = &struct {
				Unauthenticated bool `json:"unauthenticated"`
			}{Unauthenticated: true}
			resParams.Err = err
			resParams.Code = http.StatusUnauthorized
			h.Res(resParams)
			return
		}
		f(w, r.WithContext(WithSession(r.Context(), session)))
	}

}

func (h *Handler) sessionFromRequest(r *http.Request) (*Session, error) {

	authToken, err := utils.ValidateAuthToken(r)
	if err != nil {
		return nil, err
	}
	uid, err := authToken.GetUidObjectId()
	if err != nil {
		return nil, err
	}

	if h.RedisCli != nil {
		revoked, err := h.RedisCli.Exists(r.Context(), config.REVOKED_TOKEN_PREFIX+authToken.ID).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSessionBackend, err)
		}
		if revoked > 0 {
			return nil, errors.New("token revoked")
		}
	}

	return &Session{Uid: uid, Token: authToken}, nil

}

func (h *Handler) Res(params *ResParams) {

	if params.Err != nil && errors.Is(params.Err, context.Canceled) {
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	caller := "unknown"
	if ok {
		fn := runtime.FuncForPC(pc)
		caller = fmt.Sprintf("%s:%d (%s)", file, line, fn.Name())
	}

	// handle logging
	if params.Code >= 500 {
		h.Logger.Error("Error at "+caller,
			zap.Error(params.Err),
			zap.Any("request_data", params.ReqData),
		)
	} else if params.Code >= 400 {
		h.Logger.Warn("Warning at "+caller,
			zap.Error(params.Err),
			zap.Any("request_data", params.ReqData),
		)
	}

	render.Status(params.R, params.Code)
	render.JSON(params.W, params.R, params.ResData)

}

// Health pings the document store and, when configured, redis.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &ResParams{W: w, R: r}

	status := struct {
		Store string `json:"store"`
		Redis string `json:"redis"`
	}{Store: "ok", Redis: "disabled"}
	resParams.Code = http.StatusOK

	if err := h.Store.Ping(ctx); err != nil {
		status.Store = "down"
		resParams.Code = http.StatusServiceUnavailable
		resParams.Err = err
	}
	if h.RedisCli != nil {
		status.Redis = "ok"
		if err := h.RedisCli.Ping(ctx).Err(); err != nil {
			status.Redis = "down"
			resParams.Code = http.StatusServiceUnavailable
			resParams.Err = errors.Join(resParams.Err, err)
		}
	}

	resParams.ResData = &status
	h.Res(resParams)

}
