package user

import (
	"errors"
	"net/http"

	"ecovoiceapi/internal/api"
	"ecovoiceapi/pkg/config"
	"ecovoiceapi/pkg/store"

	"go.uber.org/zap"
)

func (h *Handler) GetUserData(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	session, _ := api.SessionFrom(ctx)
	resParams := &api.ResParams{W: w, R: r}

	// refresh token if expiring soon, the replaced id is revoked
	oldId, oldTimeLeft := session.Token.ID, session.Token.TimeLeft()
	session.Token.Refresh()
	if session.Token.ID != oldId && h.RedisCli != nil && oldTimeLeft > 0 {
		if err := h.RedisCli.Set(ctx, config.REVOKED_TOKEN_PREFIX+oldId, session.Uid.Hex(), oldTimeLeft).Err(); err != nil {
			h.Logger.Warn("failed to revoke rotated token", zap.String("uid", session.Uid.Hex()), zap.Error(err))
		}
	}
	token, err := session.Token.Sign()
	if err != nil {
		resParams.Err = err
		resParams.Code = http.StatusInternalServerError
		h.Res(resParams)
		return
	}

	// get user data
	user, err := h.Store.GetUser(ctx, session.Uid)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			resParams.Code = http.StatusNotFound
		} else {
			resParams.Code = http.StatusInternalServerError
		}
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = &struct {
		Token        string   `json:"token"`
		Id           string   `json:"id"`
		Name         string   `json:"name"`
		Email        string   `json:"email"`
		TotalPoints  int      `json:"totalPoints"`
		Achievements []string `json:"achievements"`
	}{
		Token:        token,
		Id:           user.Id.Hex(),
		Name:         user.Name,
		Email:        user.Email,
		TotalPoints:  user.TotalPoints,
		Achievements: user.Achievements,
	}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
