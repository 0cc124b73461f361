package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/model"
)

// MemoryContactRepository keeps submissions in process memory.
// Records are lost on restart; intended for local runs and tests.
type MemoryContactRepository struct {
	mu          sync.RWMutex
	submissions map[string]model.ContactSubmission
	now         func() time.Time
}

// NewMemoryContactRepository returns an empty in-memory repository.
func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{
		submissions: make(map[string]model.ContactSubmission),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

var (
	_ ContactRepository = (*MemoryContactRepository)(nil)
	_ DB                = (*MemoryContactRepository)(nil)
)

// Create stores a copy of s under a fresh UUID.
func (r *MemoryContactRepository) Create(ctx context.Context, s *model.ContactSubmission) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	s.ID = uuid.NewString()
	s.CreatedAt = r.now()

	r.mu.Lock()
	r.submissions[s.ID] = *s
	r.mu.Unlock()
	return nil
}

// Get returns the stored submission with the given id.
func (r *MemoryContactRepository) Get(id string) (model.ContactSubmission, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.submissions[id]
	return s, ok
}

// Len returns the number of stored submissions.
func (r *MemoryContactRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.submissions)
}

// Ping always succeeds.
func (r *MemoryContactRepository) Ping(ctx context.Context) error {
	return nil
}
