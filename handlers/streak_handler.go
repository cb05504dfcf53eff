package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/mrsimple007/friends-checking-bot/internal/interaction"
	"github.com/mrsimple007/friends-checking-bot/middleware"
	"github.com/mrsimple007/friends-checking-bot/services"
)

type StreakHandler struct {
	streakService *services.StreakService
}

func NewStreakHandler(streakService *services.StreakService) *StreakHandler {
	return &StreakHandler{
		streakService: streakService,
	}
}

type recordInteractionRequest struct {
	FriendID int64            `json:"friend_id"`
	Type     interaction.Type `json:"type"`
	Data     json.RawMessage  `json:"data,omitempty"`
}

type recordInteractionResponse struct {
	Days  int    `json:"days"`
	Error string `json:"error,omitempty"`
}

// RecordInteraction advances the streak between the acting user and a
// friend. When the streak cannot be persisted the gateway still gets a
// renderable response with zero days plus the error signal.
func (h *StreakHandler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req recordInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FriendID <= 0 || req.FriendID == userID {
		respondWithError(w, http.StatusBadRequest, "Field 'friend_id' must name another user")
		return
	}

	payload, err := interaction.DecodePayload(req.Type, req.Data)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	days, err := h.streakService.RecordInteraction(ctx, userID, req.FriendID, payload)
	if err != nil {
		log.Printf("INTERACTION ERROR: %d->%d %s: %v", userID, req.FriendID, req.Type, err)
		respondWithJSON(w, http.StatusInternalServerError, recordInteractionResponse{Days: 0, Error: "streak update failed"})
		return
	}

	respondWithJSON(w, http.StatusOK, recordInteractionResponse{Days: days})
}

func (h *StreakHandler) ListStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	streaks, err := h.streakService.ListStreaks(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if streaks == nil {
		streaks = []services.StreakSummary{}
	}

	respondWithJSON(w, http.StatusOK, streaks)
}
