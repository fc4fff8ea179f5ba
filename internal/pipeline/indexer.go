// Package pipeline 实现了内容索引的异步处理链路。
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"lumen-studio-go/internal/config"
	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/repository"
	"lumen-studio-go/pkg/es"
	"lumen-studio-go/pkg/log"
	"lumen-studio-go/pkg/tasks"

	"gorm.io/gorm"
)

// Indexer 消费 Kafka 上的内容索引任务，把已发布的作品与文章
// 同步进 Elasticsearch 检索索引。实现 kafka.TaskProcessor 接口。
type Indexer struct {
	workRepo repository.WorkRepository
	postRepo repository.PostRepository
}

// NewIndexer 创建一个新的 Indexer 实例。
func NewIndexer(workRepo repository.WorkRepository, postRepo repository.PostRepository) *Indexer {
	return &Indexer{
		workRepo: workRepo,
		postRepo: postRepo,
	}
}

// Process 处理一个内容索引任务。内容已被删除或已取消发布时按移除处理。
func (p *Indexer) Process(ctx context.Context, task tasks.ContentIndexTask) error {
	docID := fmt.Sprintf("%s:%d", task.ContentType, task.ContentID)
	indexName := config.Conf.Elasticsearch.IndexName

	if task.Remove {
		return es.DeleteDocument(ctx, indexName, docID)
	}

	doc, err := p.buildDocument(task)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 任务在队列里滞留期间内容被删掉了，按移除处理
			log.Infof("索引任务对应内容不存在，转为删除: %s", docID)
			return es.DeleteDocument(ctx, indexName, docID)
		}
		return err
	}
	if doc == nil {
		// 内容已取消发布，不应出现在检索索引中
		return es.DeleteDocument(ctx, indexName, docID)
	}

	return es.IndexDocument(ctx, indexName, *doc)
}

// buildDocument 从数据库加载内容并转换为 ES 文档。未发布内容返回 nil。
func (p *Indexer) buildDocument(task tasks.ContentIndexTask) (*model.EsDocument, error) {
	docID := fmt.Sprintf("%s:%d", task.ContentType, task.ContentID)

	switch task.ContentType {
	case tasks.ContentTypeWork:
		work, err := p.workRepo.FindByID(task.ContentID)
		if err != nil {
			return nil, err
		}
		if !work.Published {
			return nil, nil
		}
		return &model.EsDocument{
			DocID:       docID,
			ContentType: tasks.ContentTypeWork,
			ContentID:   work.ID,
			Title:       work.Title,
			Body:        work.Summary + "\n" + work.Body,
			Category:    work.Category,
			PublishedAt: work.PublishedAt,
		}, nil
	case tasks.ContentTypePost:
		post, err := p.postRepo.FindByID(task.ContentID)
		if err != nil {
			return nil, err
		}
		if !post.Published {
			return nil, nil
		}
		return &model.EsDocument{
			DocID:       docID,
			ContentType: tasks.ContentTypePost,
			ContentID:   post.ID,
			Title:       post.Title,
			Body:        post.Excerpt + "\n" + post.Body,
			PublishedAt: post.PublishedAt,
		}, nil
	default:
		return nil, fmt.Errorf("未知的内容类型: %s", task.ContentType)
	}
}
