package domain

import (
	"context"
)

// StoreError represents an error originating from a key-value slot.
type StoreError string

func (e StoreError) Error() string {
	return string(e)
}

// ErrSlotEmpty is returned when nothing has been written under a key yet.
const ErrSlotEmpty = StoreError("store: key not found")

// KeyValueStore is the port for the local key-value storage the Question Bank
// lives in. Implementations of this interface are the adapters (memory, file,
// Redis, Oracle).
type KeyValueStore interface {
	// Get returns the value stored under key.
	// It returns ErrSlotEmpty if the key has never been written.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the whole value stored under key.
	Set(ctx context.Context, key string, value string) error

	// Ping checks the health of the backing storage.
	Ping(ctx context.Context) error
}

// PersistenceStore holds the Question Bank. Load never fails: unreadable data is
// logged and treated as an empty bank. Save and Delete rewrite the whole slot.
type PersistenceStore interface {
	Load(ctx context.Context) []SavedQuiz
	Save(ctx context.Context, quiz SavedQuiz) error
	Delete(ctx context.Context, id string) error
	// List returns the in-memory collection in save order
	List() []SavedQuiz
	// Find returns the saved quiz with the given id
	Find(id string) (SavedQuiz, bool)
}
