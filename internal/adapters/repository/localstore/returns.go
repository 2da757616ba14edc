package localstore

import (
	"context"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
)

const returnRequestsFile = "returnRequests.json"

type ReturnStore struct {
	store *Store
}

func NewReturnStore(s *Store) repository.ReturnRepository {
	return &ReturnStore{store: s}
}

func (r *ReturnStore) InsertReturn(ctx context.Context, req models.ReturnRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var reqs []models.ReturnRequest
	if err := r.store.load(returnRequestsFile, &reqs); err != nil {
		return err
	}
	reqs = append(reqs, req)
	return r.store.save(returnRequestsFile, reqs)
}

func (r *ReturnStore) GetReturnByID(ctx context.Context, returnID string) (models.ReturnRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var reqs []models.ReturnRequest
	if err := r.store.load(returnRequestsFile, &reqs); err != nil {
		return models.ReturnRequest{}, err
	}
	for _, req := range reqs {
		if req.ID == returnID {
			return req, nil
		}
	}
	return models.ReturnRequest{}, repository.ErrRecordNotFound
}

func (r *ReturnStore) ListReturns(ctx context.Context) ([]models.ReturnRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var reqs []models.ReturnRequest
	if err := r.store.load(returnRequestsFile, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *ReturnStore) ListReturnsByUser(ctx context.Context, userID string) ([]models.ReturnRequest, error) {
	all, err := r.ListReturns(ctx)
	if err != nil {
		return nil, err
	}

	var reqs []models.ReturnRequest
	for _, req := range all {
		if req.UserID == userID {
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}

func (r *ReturnStore) UpdateReturn(ctx context.Context, returnID string, expected models.ReturnStatus, update repository.ReturnUpdate) (models.ReturnRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var reqs []models.ReturnRequest
	if err := r.store.load(returnRequestsFile, &reqs); err != nil {
		return models.ReturnRequest{}, err
	}

	idx := -1
	for i, req := range reqs {
		if req.ID == returnID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.ReturnRequest{}, repository.ErrRecordNotFound
	}
	if reqs[idx].Status != expected {
		return models.ReturnRequest{}, repository.ErrStaleStatus
	}

	if update.Status != nil {
		reqs[idx].Status = *update.Status
	}
	if update.RefundDate != nil {
		reqs[idx].RefundDate = update.RefundDate
	}
	reqs[idx].UpdatedAt = time.Now()

	if err := r.store.save(returnRequestsFile, reqs); err != nil {
		return models.ReturnRequest{}, err
	}
	return reqs[idx], nil
}

// WatchReturns reports that the JSON store has no change feed.
func (r *ReturnStore) WatchReturns(ctx context.Context, fn func(repository.ReturnEvent)) error {
	return repository.ErrWatchUnsupported
}
