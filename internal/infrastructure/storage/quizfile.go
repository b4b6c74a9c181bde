package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quizmatch/server/internal/domain"
)

// QuizStore snapshots created quizzes as JSON files, one per id, solution
// included. It is a durability aid, not the source of truth; the in-memory
// registry stays authoritative.
type QuizStore struct {
	baseDir string
}

func NewQuizStore(baseDir string) (*QuizStore, error) {
	store := &QuizStore{baseDir: baseDir}

	if err := os.MkdirAll(store.baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create quiz storage directory: %w", err)
	}

	return store, nil
}

func (s *QuizStore) Save(quiz *domain.Quiz) (string, error) {
	data, err := json.MarshalIndent(quiz.Record(true), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode quiz %s: %w", quiz.ID, err)
	}

	path := s.Path(quiz.ID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write quiz %s: %w", quiz.ID, err)
	}

	return path, nil
}

func (s *QuizStore) Path(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *QuizStore) Exists(id string) bool {
	_, err := os.Stat(s.Path(id))
	return err == nil
}
