package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizAnswers() []ContentItem {
	return []ContentItem{
		TextItem{Content: "3"},
		TextItem{Content: "4"},
		TextItem{Content: "5"},
	}
}

func TestNewQuiz(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

	quiz, err := NewQuiz("q1", TextItem{Content: "What is 2+2?"}, quizAnswers(), 1, map[string]any{"points": 5}, now)
	require.NoError(t, err)

	assert.Equal(t, "q1", quiz.ID)
	assert.Equal(t, 1, quiz.CorrectIndex)
	assert.Equal(t, now, quiz.CreatedAt)
}

func TestNewQuizValidation(t *testing.T) {
	testCases := []struct {
		name     string
		question ContentItem
		answers  []ContentItem
		correct  int
	}{
		{name: "nil question", question: nil, answers: quizAnswers(), correct: 0},
		{name: "invalid question", question: TextItem{}, answers: quizAnswers(), correct: 0},
		{name: "too few answers", question: TextItem{Content: "?"}, answers: quizAnswers()[:1], correct: 0},
		{name: "invalid answer", question: TextItem{Content: "?"}, answers: []ContentItem{TextItem{Content: "a"}, ImageItem{}}, correct: 0},
		{name: "correct index negative", question: TextItem{Content: "?"}, answers: quizAnswers(), correct: -1},
		{name: "correct index past end", question: TextItem{Content: "?"}, answers: quizAnswers(), correct: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewQuiz("q1", tc.question, tc.answers, tc.correct, nil, time.Now())
			assert.Error(t, err)
		})
	}
}

func TestCheckAnswer(t *testing.T) {
	quiz, err := NewQuiz("q1", TextItem{Content: "?"}, quizAnswers(), 1, nil, time.Now())
	require.NoError(t, err)

	correct, err := quiz.CheckAnswer(1)
	require.NoError(t, err)
	assert.True(t, correct)

	correct, err = quiz.CheckAnswer(0)
	require.NoError(t, err)
	assert.False(t, correct)

	_, err = quiz.CheckAnswer(-1)
	assert.ErrorIs(t, err, ErrAnswerOutOfRange)

	_, err = quiz.CheckAnswer(3)
	assert.ErrorIs(t, err, ErrAnswerOutOfRange)
}

func TestPoints(t *testing.T) {
	quiz, err := NewQuiz("q1", TextItem{Content: "?"}, quizAnswers(), 0, map[string]any{"points": float64(15)}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 15, quiz.Points())

	quiz, err = NewQuiz("q2", TextItem{Content: "?"}, quizAnswers(), 0, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, quiz.Points())
}

func TestRecordSolutionVisibility(t *testing.T) {
	quiz, err := NewQuiz("q1", TextItem{Content: "?"}, quizAnswers(), 2, nil, time.Now())
	require.NoError(t, err)

	public := quiz.Record(false)
	assert.NotContains(t, public, "correct_index")
	assert.Equal(t, "q1", public["quiz_id"])
	assert.Equal(t, 3, public["answer_count"])

	full := quiz.Record(true)
	assert.Equal(t, 2, full["correct_index"])
}

func TestRenderMarksSolutionOnlyWhenAsked(t *testing.T) {
	quiz, err := NewQuiz("q1", TextItem{Content: "?"}, quizAnswers(), 1, nil, time.Now())
	require.NoError(t, err)

	html := quiz.Render(false)
	assert.Contains(t, html, "quiz-container")
	assert.Contains(t, html, `data-answer-index="2"`)
	assert.NotContains(t, html, "quiz-answer-correct")

	html = quiz.Render(true)
	assert.Contains(t, html, "quiz-answer-correct")
}
