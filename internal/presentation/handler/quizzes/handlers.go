package quizzes

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quizmatch/server/internal/domain"
	"github.com/quizmatch/server/internal/infrastructure/json"
	"github.com/quizmatch/server/internal/infrastructure/logging"
	"github.com/quizmatch/server/internal/infrastructure/metrics"
	"github.com/quizmatch/server/internal/infrastructure/repository"
	"github.com/quizmatch/server/internal/infrastructure/storage"
)

type Handler struct {
	quizzes *repository.QuizRepository
	store   *storage.QuizStore
	logger  logging.Logger
}

func NewHandler(quizzes *repository.QuizRepository, store *storage.QuizStore, logger logging.Logger) *Handler {
	return &Handler{
		quizzes: quizzes,
		store:   store,
		logger:  logger,
	}
}

// CreateQuizHandler godoc
// @Summary      Create a quiz
// @Description  Registers a quiz whose question and answers are typed content items
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        request body createQuizRequest true "Quiz definition"
// @Success      201 {object} createQuizResponse "Quiz created"
// @Failure      400 {object} map[string]interface{} "Invalid quiz"
// @Router       /quiz/create [post]
func (h *Handler) CreateQuizHandler(w http.ResponseWriter, r *http.Request) {
	var req createQuizRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if len(req.Question) == 0 {
		json.WriteBadRequestError(w, "question is required")
		return
	}
	if req.CorrectIndex == nil {
		json.WriteBadRequestError(w, "correct_index is required")
		return
	}

	question, err := domain.DecodeContentItem(req.Question)
	if err != nil {
		json.WriteBadRequestError(w, fmt.Sprintf("invalid question: %v", err))
		return
	}

	answers := make([]domain.ContentItem, 0, len(req.Answers))
	for i, raw := range req.Answers {
		answer, err := domain.DecodeContentItem(raw)
		if err != nil {
			json.WriteBadRequestError(w, fmt.Sprintf("invalid answer at index %d: %v", i, err))
			return
		}
		answers = append(answers, answer)
	}

	quiz, err := domain.NewQuiz(uuid.NewString(), question, answers, *req.CorrectIndex, req.Metadata, time.Now().UTC())
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := h.quizzes.Create(r.Context(), quiz); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	metrics.QuizzesCreated.Inc()

	// A failed snapshot never fails the create; the registry copy is live.
	savedToFile := false
	filePath := ""
	if h.store != nil {
		path, err := h.store.Save(quiz)
		if err != nil {
			h.logger.Warn(logging.QuizStore, logging.Snapshot, "failed to snapshot quiz", map[logging.ExtraKey]any{
				logging.QuizID:       quiz.ID,
				logging.ErrorMessage: err.Error(),
			})
		} else {
			savedToFile = true
			filePath = path
		}
	}

	json.Write(w, http.StatusCreated, createQuizResponse{
		QuizID:          quiz.ID,
		Message:         "Quiz created successfully",
		SavedToFile:     savedToFile,
		FilePath:        filePath,
		CreatedAt:       quiz.CreatedAt.UTC().Format(time.RFC3339),
		QuestionPreview: quiz.QuestionPreview(),
		AnswerCount:     len(quiz.Answers),
	})
}

// GetQuizHandler godoc
// @Summary      Get a quiz
// @Description  Returns the quiz record; the solution is omitted unless include_solution=true
// @Tags         quizzes
// @Produce      json
// @Param        quizId path string true "Quiz id"
// @Param        include_solution query bool false "Include the correct index"
// @Success      200 {object} map[string]interface{} "Quiz record"
// @Failure      404 {object} map[string]interface{} "Quiz not found"
// @Router       /quiz/{quizId} [get]
func (h *Handler) GetQuizHandler(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.Get(r.Context(), chi.URLParam(r, "quizId"))
	if err != nil {
		json.WriteError(w, http.StatusNotFound, err, "Quiz not found")
		return
	}

	includeSolution := r.URL.Query().Get("include_solution") == "true"

	json.Write(w, http.StatusOK, quiz.Record(includeSolution))
}

// GetQuizHTMLHandler godoc
// @Summary      Render a quiz as HTML
// @Tags         quizzes
// @Produce      json
// @Param        quizId path string true "Quiz id"
// @Param        include_solution query bool false "Mark the correct answer"
// @Success      200 {object} quizHTMLResponse "Rendered quiz"
// @Failure      404 {object} map[string]interface{} "Quiz not found"
// @Router       /quiz/{quizId}/html [get]
func (h *Handler) GetQuizHTMLHandler(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.Get(r.Context(), chi.URLParam(r, "quizId"))
	if err != nil {
		json.WriteError(w, http.StatusNotFound, err, "Quiz not found")
		return
	}

	includeSolution := r.URL.Query().Get("include_solution") == "true"

	json.Write(w, http.StatusOK, quizHTMLResponse{
		QuizID:   quiz.ID,
		HTML:     quiz.Render(includeSolution),
		Metadata: quiz.Metadata,
	})
}

// SubmitAnswerHandler godoc
// @Summary      Submit an answer
// @Description  Checks the submitted index against the solution and awards points
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        quizId path string true "Quiz id"
// @Param        request body submitAnswerRequest true "Answer index"
// @Success      200 {object} submitAnswerResponse "Graded answer"
// @Failure      400 {object} map[string]interface{} "Missing or out-of-range answer"
// @Failure      404 {object} map[string]interface{} "Quiz not found"
// @Router       /quiz/{quizId}/submit [post]
func (h *Handler) SubmitAnswerHandler(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.Get(r.Context(), chi.URLParam(r, "quizId"))
	if err != nil {
		json.WriteError(w, http.StatusNotFound, err, "Quiz not found")
		return
	}

	var req submitAnswerRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}
	if req.Answer == nil {
		json.WriteBadRequestError(w, "answer is required")
		return
	}

	correct, err := quiz.CheckAnswer(*req.Answer)
	if err != nil {
		if errors.Is(err, domain.ErrAnswerOutOfRange) {
			json.WriteBadRequestError(w, fmt.Sprintf("answer must be between 0 and %d", len(quiz.Answers)-1))
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	resp := submitAnswerResponse{
		QuizID:  quiz.ID,
		Correct: correct,
	}
	if correct {
		resp.PointsEarned = quiz.Points()
	} else {
		resp.CorrectAnswer = &quiz.CorrectIndex
	}

	json.Write(w, http.StatusOK, resp)
}

// ListQuizzesHandler godoc
// @Summary      List quizzes
// @Description  Returns every registered quiz without solutions
// @Tags         quizzes
// @Produce      json
// @Success      200 {object} listQuizzesResponse "All quizzes"
// @Router       /quizzes [get]
func (h *Handler) ListQuizzesHandler(w http.ResponseWriter, r *http.Request) {
	quizzes := h.quizzes.List(r.Context())

	records := make([]map[string]any, 0, len(quizzes))
	for _, quiz := range quizzes {
		records = append(records, quiz.Record(false))
	}

	json.Write(w, http.StatusOK, listQuizzesResponse{
		Quizzes: records,
		Total:   len(records),
	})
}
