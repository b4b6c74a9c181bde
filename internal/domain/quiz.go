package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const minQuizAnswers = 2

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrInvalidQuiz      = errors.New("invalid quiz")
	ErrAnswerOutOfRange = errors.New("answer index out of range")
)

type Quiz struct {
	ID           string
	Question     ContentItem
	Answers      []ContentItem
	CorrectIndex int
	Metadata     map[string]any
	CreatedAt    time.Time
}

func NewQuiz(id string, question ContentItem, answers []ContentItem, correctIndex int, metadata map[string]any, now time.Time) (*Quiz, error) {
	if question == nil {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidQuiz)
	}
	if err := question.Validate(); err != nil {
		return nil, err
	}
	if len(answers) < minQuizAnswers {
		return nil, fmt.Errorf("%w: at least %d answers are required", ErrInvalidQuiz, minQuizAnswers)
	}
	for _, a := range answers {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}
	if correctIndex < 0 || correctIndex >= len(answers) {
		return nil, fmt.Errorf("%w: correct_index must be between 0 and %d", ErrInvalidQuiz, len(answers)-1)
	}

	if metadata == nil {
		metadata = map[string]any{}
	}

	return &Quiz{
		ID:           id,
		Question:     question,
		Answers:      answers,
		CorrectIndex: correctIndex,
		Metadata:     metadata,
		CreatedAt:    now,
	}, nil
}

func (q *Quiz) CheckAnswer(index int) (bool, error) {
	if index < 0 || index >= len(q.Answers) {
		return false, ErrAnswerOutOfRange
	}

	return index == q.CorrectIndex, nil
}

// Points reads the points value from metadata; JSON numbers arrive as float64.
func (q *Quiz) Points() int {
	switch v := q.Metadata["points"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}

	return 0
}

// Record returns the structured representation. The solution is omitted unless
// explicitly requested, so the client-facing payload never leaks it.
func (q *Quiz) Record(includeSolution bool) map[string]any {
	answers := make([]map[string]any, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, a.Record())
	}

	rec := map[string]any{
		"quiz_id":      q.ID,
		"question":     q.Question.Record(),
		"answers":      answers,
		"answer_count": len(q.Answers),
		"metadata":     q.Metadata,
		"created_at":   q.CreatedAt.UTC().Format(time.RFC3339),
	}

	if includeSolution {
		rec["correct_index"] = q.CorrectIndex
	}

	return rec
}

// Render is a pure value-to-markup function; it never touches shared state.
func (q *Quiz) Render(includeSolution bool) string {
	var sb strings.Builder

	sb.WriteString(`<div class="quiz-container">`)
	sb.WriteString(`<div class="quiz-question">`)
	sb.WriteString(q.Question.Render())
	sb.WriteString(`</div>`)
	sb.WriteString(`<div class="quiz-answers">`)

	for i, a := range q.Answers {
		class := "quiz-answer"
		if includeSolution && i == q.CorrectIndex {
			class = "quiz-answer quiz-answer-correct"
		}
		sb.WriteString(fmt.Sprintf(`<div class=%q data-answer-index="%d">`, class, i))
		sb.WriteString(a.Render())
		sb.WriteString(`</div>`)
	}

	sb.WriteString(`</div></div>`)

	return sb.String()
}

func (q *Quiz) QuestionPreview() string {
	return q.Question.Preview()
}
