package leaderboard

import "ecovoiceapi/internal/api"

type Handler struct {
	*api.Handler
}
