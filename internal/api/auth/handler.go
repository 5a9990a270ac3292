package auth

import "ecovoiceapi/internal/api"

type Handler struct {
	*api.Handler
}
