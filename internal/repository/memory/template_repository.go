package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ai-docgen-be/internal/model"
)

// TemplateRepository is the in-process fallback for the template library
// when no database is configured. Library contents are lost on restart.
type TemplateRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]model.TemplateRecord
}

func NewTemplateRepository() *TemplateRepository {
	return &TemplateRepository{
		records: make(map[uuid.UUID]model.TemplateRecord),
	}
}

func (r *TemplateRepository) Create(ctx context.Context, record *model.TemplateRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	r.records[record.Id] = *record
	return nil
}

func (r *TemplateRepository) FindById(ctx context.Context, id uuid.UUID) (*model.TemplateRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.records[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *TemplateRepository) FindAll(ctx context.Context) ([]model.TemplateRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]model.TemplateRecord, 0, len(r.records))
	for _, m := range r.records {
		records = append(records, m)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (r *TemplateRepository) Update(ctx context.Context, record *model.TemplateRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.UpdatedAt = time.Now()
	r.records[record.Id] = *record
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
	return nil
}
