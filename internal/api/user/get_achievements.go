package user

import (
	"errors"
	"net/http"

	"ecovoiceapi/internal/api"
	"ecovoiceapi/pkg/config"
	"ecovoiceapi/pkg/feed"
	"ecovoiceapi/pkg/schemas"
	"ecovoiceapi/pkg/store"
)

type solvedReport struct {
	*schemas.Report
	LocationLabel string `json:"locationLabel"`
}

func (h *Handler) GetAchievements(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	session, _ := api.SessionFrom(ctx)
	resParams := &api.ResParams{W: w, R: r}

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

	reports, err := h.Store.ListReports(ctx, store.ReportFilter{
		Status:    config.STATUS_SOLVED,
		CleanedBy: &session.Uid,
	})
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	solved := make([]*solvedReport, len(reports))
	for i, report := range reports {
		solved[i] = &solvedReport{Report: report, LocationLabel: feed.LocationLabel(report)}
	}

	resParams.ResData = &struct {
		TotalPoints   int             `json:"totalPoints"`
		Achievements  []string        `json:"achievements"`
		SolvedReports []*solvedReport `json:"solvedReports"`
		CanRedeem     bool            `json:"canRedeem"`
	}{
		TotalPoints:   user.TotalPoints,
		Achievements:  user.Achievements,
		SolvedReports: solved,
		CanRedeem:     user.TotalPoints > 0,
	}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
