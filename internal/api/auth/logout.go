package auth

import (
	"net/http"

	"ecovoiceapi/internal/api"
	"ecovoiceapi/pkg/config"
)

// Logout revokes the caller's token until it would have expired. Without
// redis the token is only dropped client side.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	session, _ := api.SessionFrom(ctx)
	resParams := &api.ResParams{W: w, R: r}

	if h.RedisCli != nil {
		ttl := session.Token.TimeLeft()
		if ttl > 0 {
			if err := h.RedisCli.Set(ctx, config.REVOKED_TOKEN_PREFIX+session.Token.ID, session.Uid.Hex(), ttl).Err(); err != nil {
				resParams.Code = http.StatusInternalServerError
				resParams.Err = err
				h.Res(resParams)
				return
			}
		}
	}

	resParams.Code = http.StatusOK
	h.Res(resParams)

}
