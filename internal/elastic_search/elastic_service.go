package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	esDoc "bicocerto/internal/types/elastic"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

var (
	ErrIndexing = errors.New("indexing error")
	ErrSearch   = errors.New("search error")
)

type ElasticService struct {
	Client *elasticsearch.Client
	Logger *zap.SugaredLogger
	Index  string
}

func NewService(client *elasticsearch.Client, logger *zap.SugaredLogger, index string) *ElasticService {
	return &ElasticService{
		Client: client,
		Logger: logger,
		Index:  index,
	}
}

// IndexListing writes one listing document into the index.
func (s *ElasticService) IndexListing(ctx context.Context, doc esDoc.ListingDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		s.Logger.Errorw("Failed to marshal document", zap.Error(err))
		return err
	}

	res, err := s.Client.Index(
		s.Index,
		bytes.NewReader(body),
		s.Client.Index.WithContext(ctx),
		s.Client.Index.WithDocumentID(doc.ID),
		s.Client.Index.WithRefresh("false"),
	)
	if err != nil {
		s.Logger.Errorw("Failed to index document", zap.Error(err))
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		s.Logger.Errorf("Indexing error: %s", res.String())
		return ErrIndexing
	}

	return nil
}

// BulkIndex writes a batch of listing documents into the index.
func (s *ElasticService) BulkIndex(ctx context.Context, docs []esDoc.ListingDoc) error {
	if len(docs) == 0 {
		return nil
	}

	var buf bytes.Buffer

	for _, doc := range docs {
		meta := map[string]map[string]string{
			"index": {
				"_index": s.Index,
				"_id":    doc.ID,
			},
		}
		metaLine, err := json.Marshal(meta)
		if err != nil {
			s.Logger.Errorw("Failed to marshal bulk meta", zap.Error(err))
			return err
		}

		docLine, err := json.Marshal(doc)
		if err != nil {
			s.Logger.Errorw("Failed to marshal doc", zap.Error(err), "doc_id", doc.ID)
			return err
		}

		buf.Write(metaLine)
		buf.WriteByte('\n')
		buf.Write(docLine)
		buf.WriteByte('\n')
	}

	res, err := s.Client.Bulk(bytes.NewReader(buf.Bytes()), s.Client.Bulk.WithContext(ctx))
	if err != nil {
		s.Logger.Errorw("Bulk request failed", zap.Error(err))
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		s.Logger.Errorw("Bulk indexing returned error", zap.String("response", res.String()))
		return ErrIndexing
	}

	return nil
}

// SearchByText runs a fuzzy full-text lookup over title and description,
// open listings only.
func (s *ElasticService) SearchByText(ctx context.Context, query string) ([]esDoc.ListingDoc, error) {
	searchQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":     query,
						"fields":    []string{"title^2", "description"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{
						"is_open": true,
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchQuery); err != nil {
		s.Logger.Errorw("Failed to encode search query", zap.Error(err))
		return nil, err
	}

	res, err := s.Client.Search(
		s.Client.Search.WithContext(ctx),
		s.Client.Search.WithIndex(s.Index),
		s.Client.Search.WithBody(&buf),
		s.Client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		s.Logger.Errorw("Failed to perform search query", zap.Error(err))
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		s.Logger.Errorw("Elasticsearch search error", zap.String("response", res.String()))
		return nil, ErrSearch
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source esDoc.ListingDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err = json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		s.Logger.Errorw("Failed to decode search response", zap.Error(err))
		return nil, err
	}

	results := make([]esDoc.ListingDoc, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		results = append(results, hit.Source)
	}

	return results, nil
}

// MarkClosed flips a document's is_open flag so closed listings drop out of
// suggestions without a full reindex.
func (s *ElasticService) MarkClosed(ctx context.Context, listingID string) error {
	body := strings.NewReader(`{"doc":{"is_open":false}}`)

	res, err := s.Client.Update(
		s.Index,
		listingID,
		body,
		s.Client.Update.WithContext(ctx),
	)
	if err != nil {
		s.Logger.Errorw("Failed to update document", zap.Error(err), "doc_id", listingID)
		return err
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		s.Logger.Errorf("Update error: %s", res.String())
		return ErrIndexing
	}

	return nil
}

// Delete removes a listing document. Missing documents are not an error.
func (s *ElasticService) Delete(ctx context.Context, listingID string) error {
	res, err := s.Client.Delete(
		s.Index,
		listingID,
		s.Client.Delete.WithContext(ctx),
	)
	if err != nil {
		s.Logger.Errorw("Failed to delete document", zap.Error(err), "doc_id", listingID)
		return err
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		s.Logger.Errorf("Delete error: %s", res.String())
		return ErrIndexing
	}

	return nil
}

// EnsureIndex creates the index with an autocomplete analyzer unless it
// already exists.
func (s *ElasticService) EnsureIndex(ctx context.Context) error {
	res, err := s.Client.Indices.Exists([]string{s.Index}, s.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		s.Logger.Errorw("Failed to check if index exists", zap.Error(err))
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		s.Logger.Infof("Index '%s' already exists", s.Index)
		return nil
	}

	settings := map[string]interface{}{
		"settings": map[string]interface{}{
			"analysis": map[string]interface{}{
				"filter": map[string]interface{}{
					"autocomplete_filter": map[string]interface{}{
						"type":     "edge_ngram",
						"min_gram": 2,
						"max_gram": 20,
					},
				},
				"analyzer": map[string]interface{}{
					"autocomplete": map[string]interface{}{
						"type":      "custom",
						"tokenizer": "standard",
						"filter":    []string{"lowercase", "autocomplete_filter"},
					},
				},
			},
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"title": map[string]interface{}{
					"type":     "text",
					"analyzer": "autocomplete",
				},
				"description": map[string]interface{}{
					"type": "text",
				},
				"kind": map[string]interface{}{
					"type": "keyword",
				},
				"is_open": map[string]interface{}{
					"type": "boolean",
				},
			},
		},
	}

	body, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	createRes, err := s.Client.Indices.Create(
		s.Index,
		s.Client.Indices.Create.WithContext(ctx),
		s.Client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		s.Logger.Errorw("Failed to create index", zap.Error(err))
		return err
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		s.Logger.Errorf("Index creation error: %s", createRes.String())
		return ErrIndexing
	}

	s.Logger.Infof("Index '%s' created", s.Index)
	return nil
}
