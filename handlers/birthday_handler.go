package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mrsimple007/friends-checking-bot/internal/birthday"
	"github.com/mrsimple007/friends-checking-bot/middleware"
	"github.com/mrsimple007/friends-checking-bot/services"
)

type BirthdayHandler struct {
	birthdayService *services.BirthdayService
}

func NewBirthdayHandler(birthdayService *services.BirthdayService) *BirthdayHandler {
	return &BirthdayHandler{
		birthdayService: birthdayService,
	}
}

type addBirthdayRequest struct {
	Text string `json:"text"`
}

// AddBirthday extracts a birthday from the user's free-form message and
// saves it. Model calls get a longer deadline than the usual 5s.
func (h *BirthdayHandler) AddBirthday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req addBirthdayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		respondWithError(w, http.StatusBadRequest, "Field 'text' is required")
		return
	}

	b, err := h.birthdayService.AddFromText(ctx, userID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBirthdayLimitReached):
			respondWithError(w, http.StatusForbidden, "Free plan allows 5 birthdays. Upgrade to premium for more.")
		case errors.Is(err, birthday.ErrInvalidDate):
			respondWithError(w, http.StatusUnprocessableEntity, "Could not understand that birthday. Try: Anna 14 March 1998")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, b)
}

func (h *BirthdayHandler) ListBirthdays(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	birthdays, err := h.birthdayService.List(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if birthdays == nil {
		birthdays = []birthday.Birthday{}
	}

	respondWithJSON(w, http.StatusOK, birthdays)
}

func (h *BirthdayHandler) DeleteBirthday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid birthday id")
		return
	}

	if err := h.birthdayService.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, services.ErrBirthdayNotFound) {
			respondWithError(w, http.StatusNotFound, "Birthday not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Birthday deleted"})
}

type wishRequest struct {
	Name string `json:"name"`
}

// GetWish generates a birthday wish for a named friend, falling back to a
// canned line when the model is down.
func (h *BirthdayHandler) GetWish(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req wishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Field 'name' is required")
		return
	}

	wish := h.birthdayService.Wish(ctx, userID, req.Name)
	respondWithJSON(w, http.StatusOK, map[string]string{"wish": wish})
}

// DueToday lists today's birthday reminders for the gateway's delivery job.
func (h *BirthdayHandler) DueToday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	reminders, err := h.birthdayService.RemindersFor(ctx, time.Now())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if reminders == nil {
		reminders = []services.Reminder{}
	}

	respondWithJSON(w, http.StatusOK, reminders)
}
