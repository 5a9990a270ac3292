package report

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ecovoiceapi/internal/api"
	"ecovoiceapi/pkg/config"
	"ecovoiceapi/pkg/geo"
	reportutils "ecovoiceapi/pkg/report_utils"
	"ecovoiceapi/pkg/schemas"
)

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	session, _ := api.SessionFrom(ctx)
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		Type        string          `json:"type" validate:"required,max=64"`
		Amount      string          `json:"amount" validate:"omitempty,oneof=Small Medium Large"`
		Description string          `json:"description" validate:"max=1000"`
		ImageUrl    string          `json:"imageUrl" validate:"omitempty,url"`
		Location    *geo.Coordinate `json:"location"`
	}

	// validate request body
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}

	// normalize
	reqData.Type = strings.TrimSpace(reqData.Type)
	reqData.Description = strings.TrimSpace(reqData.Description)
	resParams.ReqData = reqData

	if err := h.Validate.Struct(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}

	report := &schemas.Report{
		Ctime:       time.Now().UTC(),
		Type:        reqData.Type,
		Amount:      reqData.Amount,
		Description: reqData.Description,
		ImageUrl:    reqData.ImageUrl,
		Points:      reportutils.AssignPoints(reqData.Type, reqData.Amount),
		Votes:       0,
		Status:      config.STATUS_UNATTENDED,
		ReportedBy:  session.Uid.Hex(),
	}
	if report.Description == "" {
		report.Description = reportutils.DefaultDescription(reqData.Type)
	}
	if reqData.Location != nil {
		report.Location = &schemas.Location{Lat: reqData.Location.Lat, Lng: reqData.Location.Lng}
	}

	if err := h.Store.InsertReport(ctx, report); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = report
	resParams.Code = http.StatusCreated
	h.Res(resParams)

}
