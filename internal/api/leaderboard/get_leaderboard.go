package leaderboard

import (
	"net/http"

	"ecovoiceapi/internal/api"
	ranking "ecovoiceapi/pkg/leaderboard"

	"go.uber.org/zap"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	users, err := h.Store.ListUsers(ctx)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	entries := ranking.Rank(users)

	// movement is relative to the last scheduled snapshot
	if h.RedisCli != nil {
		last, err := ranking.LoadSnapshot(h.RedisCli, ctx)
		if err != nil {
			h.Logger.Warn("leaderboard snapshot unavailable", zap.Error(err))
		} else {
			ranking.ApplyMovement(entries, last)
		}
	}

	resParams.ResData = entries
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
