package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/models"
)

// BatchStore keeps label batches in memory
type BatchStore struct {
	batches map[string]*models.LabelBatch
	mu      sync.RWMutex
}

func New() *BatchStore {
	return &BatchStore{
		batches: make(map[string]*models.LabelBatch),
	}
}

func (s *BatchStore) Get(batchID string) (*models.LabelBatch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, exists := s.batches[batchID]
	if !exists {
		return nil, false
	}
	return cloneBatch(batch), true
}

func (s *BatchStore) Set(batchID string, batch *models.LabelBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := cloneBatch(batch)
	stored.ID = batchID
	s.batches[batchID] = stored
}

// Append adds item to the batch, creating the batch when it does not exist,
// and returns the updated batch.
func (s *BatchStore) Append(batchID string, item models.LabelItem) *models.LabelBatch {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	batch, exists := s.batches[batchID]
	if !exists {
		batch = &models.LabelBatch{ID: batchID, CreatedAt: now}
		s.batches[batchID] = batch
	}
	batch.Items = append(batch.Items, item)
	batch.UpdatedAt = now
	return cloneBatch(batch)
}

// GetAll returns every batch, oldest first
func (s *BatchStore) GetAll() []*models.LabelBatch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.LabelBatch, 0, len(s.batches))
	for _, v := range s.batches {
		result = append(result, cloneBatch(v))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (s *BatchStore) Delete(batchID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.batches[batchID]
	delete(s.batches, batchID)
	return exists
}

func cloneBatch(b *models.LabelBatch) *models.LabelBatch {
	c := *b
	c.Items = append([]models.LabelItem(nil), b.Items...)
	return &c
}
