package etl

import (
	"bicocerto/internal/listing"
	"bicocerto/internal/types/elastic"

	"go.uber.org/zap"
)

type Transformer struct {
	Logger *zap.SugaredLogger
}

func NewTransformer(logger *zap.SugaredLogger) *Transformer {
	return &Transformer{
		Logger: logger,
	}
}

// Transform projects stored listings into their search-index documents.
func (t *Transformer) Transform(input []listing.Listing) []elastic.ListingDoc {
	docs := make([]elastic.ListingDoc, 0, len(input))
	for _, l := range input {
		docs = append(docs, elastic.ListingDoc{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			Kind:        string(l.Kind),
			AreaID:      l.AreaID,
			ServiceID:   l.ServiceID,
			IsOpen:      l.Status == listing.StatusOpen,
		})
	}

	t.Logger.Infof("Transformed %d docs", len(input))

	return docs
}
