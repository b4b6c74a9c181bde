package quizzes

import "encoding/json"

// createQuizRequest carries the raw content items; each one is decoded against
// its "type" discriminator before the quiz is built.
type createQuizRequest struct {
	Question     json.RawMessage   `json:"question"`
	Answers      []json.RawMessage `json:"answers"`
	CorrectIndex *int              `json:"correct_index"`
	Metadata     map[string]any    `json:"metadata"`
}

type createQuizResponse struct {
	QuizID          string `json:"quiz_id"`
	Message         string `json:"message"`
	SavedToFile     bool   `json:"saved_to_file"`
	FilePath        string `json:"file_path,omitempty"`
	CreatedAt       string `json:"created_at"`
	QuestionPreview string `json:"question_preview"`
	AnswerCount     int    `json:"answer_count"`
}

type quizHTMLResponse struct {
	QuizID   string         `json:"quiz_id"`
	HTML     string         `json:"html"`
	Metadata map[string]any `json:"metadata"`
}

type submitAnswerRequest struct {
	Answer *int `json:"answer"`
}

type submitAnswerResponse struct {
	QuizID        string `json:"quiz_id"`
	Correct       bool   `json:"correct"`
	PointsEarned  int    `json:"points_earned"`
	CorrectAnswer *int   `json:"correct_answer,omitempty"`
}

type listQuizzesResponse struct {
	Quizzes []map[string]any `json:"quizzes"`
	Total   int              `json:"total"`
}
