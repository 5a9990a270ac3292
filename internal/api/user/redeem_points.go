package user

import (
	"net/http"

	"ecovoiceapi/internal/api"
)

// RedeemPoints is a placeholder, no rewards exist yet and nothing is written.
func (h *Handler) RedeemPoints(w http.ResponseWriter, r *http.Request) {

	resParams := &api.ResParams{W: w, R: r}
	resParams.ResData = &struct {
		ComingSoon bool   `json:"comingSoon"`
		Message    string `json:"message"`
	}{
		ComingSoon: true,
		Message:    "Rewards system coming soon!",
	}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
