package handlers

import (
	"net/http"

	"github.com/streamhive/backend/internal/models"
)

// StatsHandler implements the channel statistics endpoint.
type StatsHandler struct {
	Stats         StatsProvider
	Sessions      SessionManager
	Subscriptions SubscriptionEngine
}

type channelStatsResponse struct {
	models.ChannelStats
	Subscribed bool `json:"subscribed"`
}

// Channel handles GET /api/v1/channels/{id}/stats. Authenticated callers
// also learn whether they are subscribed to the channel.
func (h StatsHandler) Channel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	channelID := r.PathValue("id")

	stats, err := h.Stats.ChannelStats(ctx, channelID)
	if err != nil {
		respondFault(ctx, w, err)
		return
	}

	resp := channelStatsResponse{ChannelStats: stats}
	if actor := optionalActorID(r, h.Sessions); actor != "" && h.Subscriptions != nil {
		subscribed, err := h.Subscriptions.Subscribed(ctx, actor, channelID)
		if err != nil {
			respondFault(ctx, w, err)
			return
		}
		resp.Subscribed = subscribed
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}
