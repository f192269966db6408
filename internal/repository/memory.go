package repository

import (
	"context"
	"sync"
	"time"

	"rentadmin/internal/models"
)

// StateRepository remembers per-operator UI state (overlay widget
// position, last export format). It is the only state this tool keeps;
// the record store owns everything else.
type StateRepository interface {
	GetState(ctx context.Context, operatorID string) (*models.UIState, error)
	SetState(ctx context.Context, state *models.UIState) error
	ClearState(ctx context.Context, operatorID string) error
}

type MemoryStateRepository struct {
	states sync.Map
	ttl    time.Duration
}

func NewMemoryStateRepository(ttl time.Duration) *MemoryStateRepository {
	return &MemoryStateRepository{ttl: ttl}
}

type memoryEntry struct {
	state     *models.UIState
	expiresAt time.Time
}

func (r *MemoryStateRepository) GetState(ctx context.Context, operatorID string) (*models.UIState, error) {
	val, ok := r.states.Load(operatorID)
	if !ok {
		return nil, nil
	}
	entry := val.(*memoryEntry)
	if r.ttl > 0 && time.Now().After(entry.expiresAt) {
		r.states.Delete(operatorID)
		return nil, nil
	}
	return entry.state, nil
}

func (r *MemoryStateRepository) SetState(ctx context.Context, state *models.UIState) error {
	r.states.Store(state.OperatorID, &memoryEntry{
		state:     state,
		expiresAt: time.Now().Add(r.ttl),
	})
	return nil
}

func (r *MemoryStateRepository) ClearState(ctx context.Context, operatorID string) error {
	r.states.Delete(operatorID)
	return nil
}
