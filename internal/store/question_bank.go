package store

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"edugen/internal/domain"
	"edugen/internal/logger"

	"go.uber.org/zap"
)

// QuestionBank is the persisted collection of saved quizzes. The whole
// collection lives as one JSON array under domain.QuestionBankKey; every Save
// and Delete rewrites it. The in-memory list only changes once the write has
// succeeded.
type QuestionBank struct {
	kv  domain.KeyValueStore
	key string

	mu      sync.RWMutex
	quizzes []domain.SavedQuiz
}

func NewQuestionBank(kv domain.KeyValueStore) *QuestionBank {
	return &QuestionBank{kv: kv, key: domain.QuestionBankKey}
}

// Load reads the slot and replaces the in-memory collection. Missing or
// unreadable data yields an empty bank.
func (b *QuestionBank) Load(ctx context.Context) []domain.SavedQuiz {
	l := logger.Get().With(zap.String("key", b.key))

	quizzes := []domain.SavedQuiz{}
	raw, err := b.kv.Get(ctx, b.key)
	switch {
	case errors.Is(err, domain.ErrSlotEmpty):
		l.Debug("Question bank slot is empty")
	case err != nil:
		l.Warn("Failed to read question bank, starting empty", zap.Error(err))
	default:
		if err := json.Unmarshal([]byte(raw), &quizzes); err != nil {
			l.Warn("Failed to parse question bank, starting empty", zap.Error(err))
			quizzes = []domain.SavedQuiz{}
		}
		if quizzes == nil {
			quizzes = []domain.SavedQuiz{}
		}
	}

	b.mu.Lock()
	b.quizzes = quizzes
	b.mu.Unlock()

	l.Info("Question bank loaded", zap.Int("quizzes", len(quizzes)))
	return slices.Clone(quizzes)
}

// Save appends quiz and persists the collection.
func (b *QuestionBank) Save(ctx context.Context, quiz domain.SavedQuiz) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := make([]domain.SavedQuiz, 0, len(b.quizzes)+1)
	next = append(next, b.quizzes...)
	next = append(next, quiz)

	if err := b.write(ctx, next); err != nil {
		return err
	}
	b.quizzes = next
	logger.Get().Info("Quiz saved to question bank", zap.String("id", quiz.ID), zap.String("topic", quiz.Topic))
	return nil
}

// Delete removes every quiz with the given id and persists the collection.
// An unknown id still rewrites the slot with unchanged content.
func (b *QuestionBank) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := make([]domain.SavedQuiz, 0, len(b.quizzes))
	for _, q := range b.quizzes {
		if q.ID != id {
			next = append(next, q)
		}
	}

	if err := b.write(ctx, next); err != nil {
		return err
	}
	b.quizzes = next
	logger.Get().Info("Quiz deleted from question bank", zap.String("id", id))
	return nil
}

func (b *QuestionBank) write(ctx context.Context, quizzes []domain.SavedQuiz) error {
	data, err := json.Marshal(quizzes)
	if err != nil {
		return domain.NewInternalError("failed to encode question bank", err)
	}
	if err := b.kv.Set(ctx, b.key, string(data)); err != nil {
		logger.Get().Error("Failed to persist question bank", zap.String("key", b.key), zap.Error(err))
		return domain.NewStorageError("failed to persist question bank", err)
	}
	return nil
}

// List returns the collection in save order.
func (b *QuestionBank) List() []domain.SavedQuiz {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.quizzes)
}

// NewestFirst returns the collection in reverse save order.
func (b *QuestionBank) NewestFirst() []domain.SavedQuiz {
	list := b.List()
	slices.Reverse(list)
	return list
}

func (b *QuestionBank) Find(id string) (domain.SavedQuiz, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, q := range b.quizzes {
		if q.ID == id {
			return q, true
		}
	}
	return domain.SavedQuiz{}, false
}

var _ domain.PersistenceStore = (*QuestionBank)(nil)
