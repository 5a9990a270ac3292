package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecovoiceapi/internal/api"
	"ecovoiceapi/pkg/config"
	"ecovoiceapi/pkg/utils"

	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func (h *Handler) ImageUploadUrl(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	session, _ := api.SessionFrom(ctx)
	resParams := &api.ResParams{W: w, R: r}

	if h.R2Presign == nil {
		resParams.Code = http.StatusServiceUnavailable
		resParams.Err = errors.New("object storage not configured")
		h.Res(resParams)
		return
	}

	var reqData struct {
		ContentType string `json:"contentType" validate:"required,oneof=image/jpeg image/png image/webp"`
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

	key := "reports/" + session.Uid.Hex() + "/" + uuid.NewString() + imageExtensions[reqData.ContentType]
	upload, err := utils.PresignImageUpload(h.R2Presign, ctx, config.VAR.R2_BUCKET, config.VAR.R2_PUBLIC_URL, key, reqData.ContentType)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = upload
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
