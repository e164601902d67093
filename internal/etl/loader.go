package etl

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	elasticService "bicocerto/internal/elastic_search"
	"bicocerto/internal/types/elastic"

	"go.uber.org/zap"
)

type ElasticLoader struct {
	Service *elasticService.ElasticService
	Logger  *zap.SugaredLogger
	DB      *sql.DB
}

func NewElasticLoader(service *elasticService.ElasticService, logger *zap.SugaredLogger, db *sql.DB) *ElasticLoader {
	return &ElasticLoader{
		Service: service,
		Logger:  logger,
		DB:      db,
	}
}

// Load bulk-indexes the documents, then marks the source rows as indexed so
// the next extraction skips them.
func (l *ElasticLoader) Load(ctx context.Context, docs []elastic.ListingDoc) error {
	if len(docs) == 0 {
		l.Logger.Infow("No documents to load")
		return nil
	}

	l.Logger.Infow("Loading documents to Elasticsearch", "count", len(docs))
	if err := l.Service.BulkIndex(ctx, docs); err != nil {
		l.Logger.Errorw("Failed to bulk index documents", zap.Error(err))
		return err
	}

	ids := make([]interface{}, len(docs))
	placeholders := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := `UPDATE listing SET indexed = TRUE WHERE id IN (` + strings.Join(placeholders, ", ") + `)`

	if _, err := l.DB.ExecContext(ctx, query, ids...); err != nil {
		l.Logger.Errorw("Failed to mark listings as indexed", zap.Error(err))
		return err
	}

	l.Logger.Infow("Successfully indexed documents", "count", len(docs))
	return nil
}
