package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ecovoiceapi/internal/api"
	reportutils "ecovoiceapi/pkg/report_utils"
	"ecovoiceapi/pkg/schemas"
	"ecovoiceapi/pkg/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	session, _ := api.SessionFrom(ctx)
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		ReportId string `json:"reportId" validate:"required,reportid"`
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
	uidString := session.Uid.Hex()

	// lock report so competing claims fail fast
	if h.RedisCli != nil {
		locked, err := reportutils.LockReport(h.RedisCli, ctx, reqData.ReportId, uidString)
		if err != nil {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}
		if !locked {
			resParams.ResData = &struct {
				Conflict bool `json:"conflict"`
			}{Conflict: true}
			resParams.Code = http.StatusConflict
			h.Res(resParams)
			return
		}
		defer func() {
			if _, err := reportutils.UnlockReport(h.RedisCli, reqData.ReportId, uidString); err != nil {
				h.Logger.Warn("failed to release claim lock", zap.String("reportId", reqData.ReportId), zap.Error(err))
			}
		}()
	}

	// mark solved and credit user in one transaction
	res, err := h.Store.ClaimReport(ctx, reportId, session.Uid, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyClaimed):
			resParams.ResData = &struct {
				Conflict bool `json:"conflict"`
			}{Conflict: true}
			resParams.Code = http.StatusConflict
		case errors.Is(err, store.ErrReportNotFound), errors.Is(err, store.ErrUserNotFound):
			resParams.ResData = &struct {
				NotFound bool `json:"notFound"`
			}{NotFound: true}
			resParams.Code = http.StatusNotFound
		default:
			resParams.Code = http.StatusInternalServerError
		}
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = &struct {
		Report         *schemas.Report `json:"report"`
		TotalPoints    int             `json:"totalPoints"`
		Achievement    string          `json:"achievement,omitempty"`
		AlreadyClaimed bool            `json:"alreadyClaimed"`
	}{
		Report:         res.Report,
		TotalPoints:    res.User.TotalPoints,
		Achievement:    res.Achievement,
		AlreadyClaimed: res.AlreadyClaimed,
	}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
