package search

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/pkg/apperr"
)

// ESBootcampIndex mirrors bootcamps into Elasticsearch for full-text
// search. Indexing is best-effort; an unconfigured client is a no-op.
type ESBootcampIndex struct {
	ES        *elasticsearch.Client
	IndexName string
	Logger    *logrus.Logger
}

func NewESBootcampIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *ESBootcampIndex {
	return &ESBootcampIndex{ES: es, IndexName: index, Logger: logger}
}

func (s *ESBootcampIndex) Index(ctx context.Context, b *entity.Bootcamp) error {
	if s.ES == nil || s.IndexName == "" {
		return nil
	}
	doc := map[string]any{
		"id":          b.ID,
		"name":        b.Name,
		"slug":        b.Slug,
		"description": b.Description,
		"careers":     b.Careers,
		"city":        b.Location.City,
		"state":       b.Location.State,
		"created_at":  b.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  b.UpdatedAt.Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.IndexName, DocumentID: b.ID, Body: strings.NewReader(string(body)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("bootcamp_id", b.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("bootcamp_id", b.ID).Warn("es index response error")
	}
	return nil
}

func (s *ESBootcampIndex) Delete(ctx context.Context, id string) error {
	if s.ES == nil || s.IndexName == "" {
		return nil
	}
	req := esapi.DeleteRequest{Index: s.IndexName, DocumentID: id}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("bootcamp_id", id).Warn("es delete failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return nil
}

// Search runs a multi_match query over name, description and careers.
func (s *ESBootcampIndex) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.IndexName == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description", "careers"},
			},
		},
		"size": size,
	}
	body, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.IndexName),
		s.ES.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, err, "search unavailable")
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, apperr.New(apperr.Upstream, "search returned status %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, err, "search unavailable")
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
