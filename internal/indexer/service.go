package indexer

import (
	"context"

	"bicocerto/internal/kafka"
	"bicocerto/internal/listing"
	"bicocerto/internal/types/elastic"

	"go.uber.org/zap"
)

// SearchIndex is the slice of the Elasticsearch service the indexer needs.
type SearchIndex interface {
	IndexListing(ctx context.Context, doc elastic.ListingDoc) error
	MarkClosed(ctx context.Context, listingID string) error
	Delete(ctx context.Context, listingID string) error
}

// Service applies listing lifecycle events to the search index.
type Service struct {
	listings listing.ListingRepo
	index    SearchIndex
	logger   *zap.SugaredLogger
}

func NewService(listings listing.ListingRepo, index SearchIndex, logger *zap.SugaredLogger) *Service {
	return &Service{
		listings: listings,
		index:    index,
		logger:   logger,
	}
}

func (s *Service) ProcessEvent(ctx context.Context, event kafka.Event) error {
	if event.ListingID == "" {
		return nil
	}

	switch event.Type {
	case kafka.EventTypeListingPublished:
		l, err := s.listings.GetByID(ctx, event.ListingID, nil)
		if err != nil {
			return err
		}
		return s.index.IndexListing(ctx, elastic.ListingDoc{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			Kind:        string(l.Kind),
			AreaID:      l.AreaID,
			ServiceID:   l.ServiceID,
			IsOpen:      l.Status == listing.StatusOpen,
		})
	case kafka.EventTypeListingClosed:
		return s.index.MarkClosed(ctx, event.ListingID)
	case kafka.EventTypeListingDeleted:
		return s.index.Delete(ctx, event.ListingID)
	default:
		// Search and review events carry no index changes.
		return nil
	}
}
