package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mrsimple007/friends-checking-bot/internal/quiz"
	"github.com/mrsimple007/friends-checking-bot/middleware"
	"github.com/mrsimple007/friends-checking-bot/services"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

// GetQuestions returns the fixed question bank the gateway renders while an
// owner fills in their own answers.
func (h *QuizHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, quiz.Questions)
}

type createQuizRequest struct {
	Answers map[int]int `json:"answers"`
}

func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req createQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	q, err := h.quizService.CreateQuiz(ctx, userID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuizLimitReached):
			respondWithError(w, http.StatusForbidden, "Free plan allows one quiz. Upgrade to premium for more.")
		case errors.Is(err, quiz.ErrIncompleteAnswers), errors.Is(err, quiz.ErrOptionOutOfRange):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, q)
}

func (h *QuizHandler) MyQuizzes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	quizzes, err := h.quizService.MyQuizzes(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if quizzes == nil {
		quizzes = []quiz.Quiz{}
	}

	respondWithJSON(w, http.StatusOK, quizzes)
}

func (h *QuizHandler) MyResults(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	results, err := h.quizService.MyResults(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []services.ResultSummary{}
	}

	respondWithJSON(w, http.StatusOK, results)
}

// StartSession begins taking a friend's quiz and returns the first question.
func (h *QuizHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	quizID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quiz id")
		return
	}

	sess, question, err := h.quizService.StartSession(ctx, userID, quizID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuizNotFound):
			respondWithError(w, http.StatusNotFound, "Quiz not found")
		case errors.Is(err, services.ErrOwnQuiz):
			respondWithError(w, http.StatusBadRequest, "You cannot take your own quiz")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"question_index": 0,
		"question":       question,
		"is_retake":      sess.IsRetake,
	})
}

type submitAnswerRequest struct {
	Option int `json:"option"`
}

// SubmitAnswer records one pick for the taker's active session; the
// fifteenth answer finishes and scores the quiz.
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	outcome, err := h.quizService.SubmitAnswer(ctx, userID, req.Option)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoActiveSession):
			respondWithError(w, http.StatusConflict, "No active quiz session")
		case errors.Is(err, quiz.ErrOptionOutOfRange):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, outcome)
}
