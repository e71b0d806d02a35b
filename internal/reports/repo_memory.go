package reports

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Report
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Report)}
}

func (r *MemoryRepo) Create(ctx context.Context, rep Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[rep.ID]; ok {
		return ErrAlreadyExists
	}
	r.data[rep.ID] = rep
	return nil
}

func (r *MemoryRepo) MarkEmailSent(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	rep.EmailSent = true
	r.data[id] = rep
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.data[id]
	if !ok {
		return Report{}, ErrNotFound
	}
	return rep, nil
}

func (r *MemoryRepo) ListAll(ctx context.Context, limit, offset int) ([]Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return page(r.sorted(func(Report) bool { return true }), limit, offset), nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.sorted(func(rep Report) bool { return rep.UserID == userID }), nil
}

func (r *MemoryRepo) sorted(keep func(Report) bool) []Report {
	r.mu.RLock()
	out := make([]Report, 0, len(r.data))
	for _, rep := range r.data {
		if keep(rep) {
			out = append(out, rep)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func page(reports []Report, limit, offset int) []Report {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(reports) {
		return []Report{}
	}
	end := len(reports)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return reports[offset:end]
}
