package api

import (
	reportutils "ecovoiceapi/pkg/report_utils"

	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {

	validate := validator.New()
	validate.RegisterValidation("reportid", reportutils.ReportIdValidator)
	return validate

}
