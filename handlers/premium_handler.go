package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mrsimple007/friends-checking-bot/internal/premium"
	"github.com/mrsimple007/friends-checking-bot/middleware"
	"github.com/mrsimple007/friends-checking-bot/services"
)

type PremiumHandler struct {
	premiumService *services.PremiumService
	userService    *services.UserService
}

func NewPremiumHandler(premiumService *services.PremiumService, userService *services.UserService) *PremiumHandler {
	return &PremiumHandler{
		premiumService: premiumService,
		userService:    userService,
	}
}

func (h *PremiumHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, premium.Plans)
}

type subscribeRequest struct {
	Plan string `json:"plan"`
}

// Subscribe opens a pending purchase request. The gateway then shows the
// card number; an admin settles the request after checking the transfer.
func (h *PremiumHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.premiumService.RequestSubscription(ctx, userID, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownPlan):
			respondWithError(w, http.StatusBadRequest, "Unknown plan")
		case errors.Is(err, services.ErrPendingRequestOpen):
			respondWithError(w, http.StatusConflict, "A pending request already exists")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, request)
}

// GetStatus reports whether the acting user currently has premium.
func (h *PremiumHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{
		"is_premium": h.userService.IsPremium(ctx, userID),
	})
}
