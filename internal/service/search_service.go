package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lumen-studio-go/internal/config"
	"lumen-studio-go/internal/model"
	"lumen-studio-go/pkg/log"

	"github.com/elastic/go-elasticsearch/v8"
)

// SearchService 接口定义了公开内容的全文检索操作。
type SearchService interface {
	Search(ctx context.Context, query, contentType string, topK int) ([]model.SearchResponseDTO, error)
}

type searchService struct {
	esClient *elasticsearch.Client
}

// NewSearchService 创建一个新的 SearchService 实例。
func NewSearchService(esClient *elasticsearch.Client) SearchService {
	return &searchService{esClient: esClient}
}

// Search 在检索索引中全文搜索已发布的作品与文章。
// contentType 为 "work" 或 "post" 时只搜对应类型，为空时不过滤。
func (s *searchService) Search(ctx context.Context, query, contentType string, topK int) ([]model.SearchResponseDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.SearchResponseDTO{}, nil
	}
	if topK <= 0 {
		topK = 10
	}

	// 标题命中的权重高于正文
	boolQuery := map[string]interface{}{
		"must": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^3", "body"},
			},
		},
	}
	if contentType != "" {
		boolQuery["filter"] = map[string]interface{}{
			"term": map[string]interface{}{"content_type": contentType},
		}
	}
	esQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"highlight": map[string]interface{}{
			"fields": map[string]interface{}{
				"body": map[string]interface{}{
					"fragment_size":       160,
					"number_of_fragments": 1,
				},
			},
		},
		"size": topK,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(esQuery); err != nil {
		return nil, fmt.Errorf("failed to encode es query: %w", err)
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(ctx),
		s.esClient.Search.WithIndex(config.Conf.Elasticsearch.IndexName),
		s.esClient.Search.WithBody(&buf),
		s.esClient.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		log.Errorf("[SearchService] 向 Elasticsearch 发送搜索请求失败: %v", err)
		return nil, fmt.Errorf("elasticsearch search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		bodyBytes, _ := io.ReadAll(res.Body)
		log.Errorf("[SearchService] Elasticsearch 返回错误, status: %s, body: %s", res.Status(), string(bodyBytes))
		return nil, fmt.Errorf("elasticsearch returned an error: %s", res.String())
	}

	var esResponse struct {
		Hits struct {
			Hits []struct {
				Source    model.EsDocument    `json:"_source"`
				Score     float64             `json:"_score"`
				Highlight map[string][]string `json:"highlight"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResponse); err != nil {
		return nil, fmt.Errorf("failed to decode es response: %w", err)
	}

	results := make([]model.SearchResponseDTO, 0, len(esResponse.Hits.Hits))
	for _, hit := range esResponse.Hits.Hits {
		snippet := ""
		if frags := hit.Highlight["body"]; len(frags) > 0 {
			snippet = frags[0]
		} else if len(hit.Source.Body) > 160 {
			snippet = hit.Source.Body[:160] + "…"
		} else {
			snippet = hit.Source.Body
		}
		results = append(results, model.SearchResponseDTO{
			ContentType: hit.Source.ContentType,
			ContentID:   hit.Source.ContentID,
			Title:       hit.Source.Title,
			Snippet:     snippet,
			Category:    hit.Source.Category,
			Score:       hit.Score,
		})
	}

	log.Infof("[SearchService] 搜索完成, query: '%s', 返回 %d 条结果", query, len(results))
	return results, nil
}
