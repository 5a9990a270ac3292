package report

import "ecovoiceapi/internal/api"

type Handler struct {
	*api.Handler
}
