package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mrsimple007/friends-checking-bot/internal/premium"
	"github.com/mrsimple007/friends-checking-bot/services"
)

type AdminHandler struct {
	adminService   *services.AdminService
	premiumService *services.PremiumService
}

func NewAdminHandler(adminService *services.AdminService, premiumService *services.PremiumService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		premiumService: premiumService,
	}
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.adminService.GetStats(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	requests, err := h.premiumService.PendingRequests(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if requests == nil {
		requests = []premium.SubscriptionRequest{}
	}

	respondWithJSON(w, http.StatusOK, requests)
}

// ApproveRequest settles a pending purchase and grants premium from the
// moment of approval.
func (h *AdminHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.premiumService.Approve)
}

func (h *AdminHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.premiumService.Decline)
}

func (h *AdminHandler) settle(w http.ResponseWriter, r *http.Request, decide func(context.Context, uuid.UUID) (*premium.SubscriptionRequest, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	request, err := decide(ctx, requestID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			respondWithError(w, http.StatusNotFound, "Request not found")
		case errors.Is(err, services.ErrRequestSettled):
			respondWithError(w, http.StatusConflict, "Request already settled")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, request)
}
