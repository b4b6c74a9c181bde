package repository

import (
	"context"
	"sync"

	"github.com/quizmatch/server/internal/domain"
)

// QuizRepository is the id-keyed quiz registry. Quizzes are immutable once
// created, so readers can share the stored values; only the map itself needs
// the lock.
type QuizRepository struct {
	mu      sync.RWMutex
	quizzes map[string]*domain.Quiz
}

func NewQuizRepository() *QuizRepository {
	return &QuizRepository{
		quizzes: make(map[string]*domain.Quiz),
	}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.quizzes[quiz.ID] = quiz

	return nil
}

func (r *QuizRepository) Get(ctx context.Context, id string) (*domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, domain.ErrQuizNotFound
	}

	return quiz, nil
}

func (r *QuizRepository) List(ctx context.Context) []*domain.Quiz {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quizzes := make([]*domain.Quiz, 0, len(r.quizzes))
	for _, quiz := range r.quizzes {
		quizzes = append(quizzes, quiz)
	}

	return quizzes
}

func (r *QuizRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.quizzes)
}
