package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"

	"github.com/fitlife/gymsched/internal/entity"
)

const gymClassIndex = "gym_classes"

// GymClassIndexer keeps the search index in step with gym-class mutations.
// The index is a read-side convenience; the database stays authoritative.
type GymClassIndexer interface {
	IndexGymClass(ctx context.Context, class *entity.GymClass) error
	DeleteGymClass(ctx context.Context, id uuid.UUID) error
	SearchGymClasses(ctx context.Context, query string, limit, offset int) ([]uuid.UUID, int64, error)
}

type meiliGymClassIndex struct {
	client meilisearch.ServiceManager
}

func NewMeiliGymClassIndex(client meilisearch.ServiceManager) GymClassIndexer {
	s := &meiliGymClassIndex{client: client}
	s.initIndex()
	return s
}

func (s *meiliGymClassIndex) initIndex() {
	sortableAttrs := []string{"start_time"}
	if _, err := s.client.Index(gymClassIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("failed to update %s sortable attributes: %v", gymClassIndex, err)
	}
}

type gymClassDoc struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CategoryName string `json:"category_name"`
	StartTime    int64  `json:"start_time"`
	Duration     int    `json:"duration"`
}

func (s *meiliGymClassIndex) IndexGymClass(ctx context.Context, class *entity.GymClass) error {
	doc := gymClassDoc{
		ID:          class.ID.String(),
		Name:        class.Name,
		Description: class.Description,
		StartTime:   class.StartTime.Unix(),
		Duration:    class.Duration,
	}
	if class.Category != nil {
		doc.CategoryName = class.Category.Name
	}

	_, err := s.client.Index(gymClassIndex).AddDocuments([]gymClassDoc{doc}, strPtr("id"))
	if err != nil {
		return fmt.Errorf("failed to index gym class %s: %w", doc.ID, err)
	}
	return nil
}

func (s *meiliGymClassIndex) DeleteGymClass(ctx context.Context, id uuid.UUID) error {
	_, err := s.client.Index(gymClassIndex).DeleteDocument(id.String())
	return err
}

func (s *meiliGymClassIndex) SearchGymClasses(ctx context.Context, query string, limit, offset int) ([]uuid.UUID, int64, error) {
	resp, err := s.client.Index(gymClassIndex).Search(query, &meilisearch.SearchRequest{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc gymClassDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, resp.EstimatedTotalHits, nil
}

func strPtr(s string) *string {
	return &s
}
