package report

import (
	"errors"
	"net/http"
	"strconv"

	"ecovoiceapi/internal/api"
	"ecovoiceapi/pkg/config"
	"ecovoiceapi/pkg/feed"
	"ecovoiceapi/pkg/geo"
	"ecovoiceapi/pkg/store"
)

// GetFeed lists unattended reports. The caller's position (lat, lng) is
// optional; without it distances are unknown and distance sort keeps store
// order.
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}
	query := r.URL.Query()

	var reqData struct {
		Sort string   `validate:"omitempty,oneof=points distance"`
		Lat  *float64 `validate:"omitempty,min=-90,max=90"`
		Lng  *float64 `validate:"omitempty,min=-180,max=180"`
	}
	reqData.Sort = query.Get("sort")

	for _, param := range []struct {
		name string
		dst  **float64
	}{{"lat", &reqData.Lat}, {"lng", &reqData.Lng}} {
		raw := query.Get(param.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			resParams.ResData = &struct {
				InvalidPosition bool `json:"invalidPosition"`
			}{InvalidPosition: true}
			resParams.Code = http.StatusBadRequest
			resParams.Err = err
			h.Res(resParams)
			return
		}
		*param.dst = &v
	}
	resParams.ReqData = reqData

	if (reqData.Lat == nil) != (reqData.Lng == nil) {
		resParams.ResData = &struct {
			InvalidPosition bool `json:"invalidPosition"`
		}{InvalidPosition: true}
		resParams.Code = http.StatusBadRequest
		resParams.Err = errors.New("lat and lng must be given together")
		h.Res(resParams)
		return
	}

	if err := h.Validate.Struct(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}

	mode := feed.SortByPoints
	if reqData.Sort != "" {
		mode = feed.SortMode(reqData.Sort)
	}
	var observer *geo.Coordinate
	if reqData.Lat != nil && reqData.Lng != nil {
		observer = &geo.Coordinate{Lat: *reqData.Lat, Lng: *reqData.Lng}
	}

	reports, err := h.Store.ListReports(ctx, store.ReportFilter{Status: config.STATUS_UNATTENDED})
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	ws := feed.NewWorkingSet(reports, observer)

	resParams.ResData = &struct {
		Sort        feed.SortMode `json:"sort"`
		HasPosition bool          `json:"hasPosition"`
		Reports     []*feed.Entry `json:"reports"`
	}{
		Sort:        mode,
		HasPosition: observer != nil,
		Reports:     ws.Sorted(mode),
	}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
