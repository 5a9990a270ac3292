package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"ecovoiceapi/internal/api"
	"ecovoiceapi/pkg/config"
	"ecovoiceapi/pkg/schemas"
	"ecovoiceapi/pkg/utils"

	"go.uber.org/zap"
)

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()
	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	var reqData struct {
		Token string `json:"token" validate:"required"` //google token
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

	if err := h.Validate.Struct(&reqData); err != nil {
		resParams.Code = http.StatusBadRequest
		resParams.Err = err
		h.Res(resParams)
		return
	}

	// validate google token
	googleToken, err := h.VerifyGoogle(ctx, reqData.Token, config.VAR.GOOGLE_CLIENT_ID)
	if err != nil {
		resParams.Code = http.StatusForbidden
		resParams.Err = err
		h.Res(resParams)
		return
	}
	googleId := googleToken.Subject
	if googleId == "" {
		resParams.Code = http.StatusForbidden
		resParams.Err = errors.New("google token has no subject")
		h.Res(resParams)
		return
	}

	// email must be provided
	email, ok := googleToken.Claims["email"].(string)
	if !ok || email == "" {
		resParams.ResData = &struct {
			EmailMissing bool `json:"emailMissing"`
		}{EmailMissing: true}
		resParams.Code = http.StatusBadRequest
		resParams.Err = errors.New("google token has no email")
		h.Res(resParams)
		return
	}

	name, _ := googleToken.Claims["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		name = utils.NewDisplayName()
	}

	// find user, create on first sign-in
	user, accountCreated, err := h.Store.FindOrCreateGoogleUser(ctx, &schemas.User{
		Ctime:    time.Now().UTC(),
		GoogleId: googleId,
		Name:     name,
		Email:    strings.ToLower(email),
	})
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	// create jwt
	authToken := utils.CreateNewAuthToken(user.Id)
	authTokenStr, err := authToken.Sign()
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	if accountCreated {
		h.Logger.Info("account created", zap.String("uid", user.Id.Hex()))
	}

	resParams.ResData = &struct {
		Token          string        `json:"token"`
		AccountCreated bool          `json:"accountCreated"`
		User           *schemas.User `json:"user"`
	}{
		Token:          authTokenStr,
		AccountCreated: accountCreated,
		User:           user,
	}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
