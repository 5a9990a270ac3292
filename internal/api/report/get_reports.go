package report

import (
	"net/http"

	"ecovoiceapi/internal/api"
	"ecovoiceapi/pkg/store"
)

func (h *Handler) GetReports(w http.ResponseWriter, r *http.Request) {

	resParams := &api.ResParams{W: w, R: r}

	reports, err := h.Store.ListReports(r.Context(), store.ReportFilter{})
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = reports
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
