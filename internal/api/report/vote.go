package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecovoiceapi/internal/api"
	"ecovoiceapi/pkg/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		ReportId  string `json:"reportId" validate:"required,reportid"`
		Direction string `json:"direction" validate:"required,oneof=up down"`
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
	resParams.ReqData = reqData

	if err := h.Validate.Struct(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}

	reportId, _ := bson.ObjectIDFromHex(reqData.ReportId)

	votes, err := h.Store.Vote(ctx, reportId, reqData.Direction == "up")
	if err != nil {
		if errors.Is(err, store.ErrReportNotFound) {
			resParams.ResData = &struct {
				NotFound bool `json:"notFound"`
			}{NotFound: true}
			resParams.Code = http.StatusNotFound
		} else {
			resParams.Code = http.StatusInternalServerError
		}
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = &struct {
		ReportId string `json:"reportId"`
		Votes    int    `json:"votes"`
	}{
		ReportId: reqData.ReportId,
		Votes:    votes,
	}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
