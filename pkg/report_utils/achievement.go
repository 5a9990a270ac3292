package reportutils

import (
	"strings"

	"ecovoiceapi/pkg/schemas"
)

func NewAchievement(report *schemas.Report) string {

	desc := strings.TrimSpace(report.Description)
	if desc == "" {
		desc = DefaultDescription(report.Type)
	}
	return "Cleaned up: " + desc

}

func DefaultDescription(reportType string) string {
	return strings.TrimSpace(reportType + " waste")
}
