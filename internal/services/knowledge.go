package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// KnowledgeBase stores chunked hiring-guideline material and serves filtered
// similarity searches during scoring. It is an advisory dependency: the
// pipeline works with it absent and scoring treats retrieval failures as an
// empty context.
type KnowledgeBase interface {
	EnsureCollection(ctx context.Context) error
	UpsertChunk(ctx context.Context, docID, docType, text string, embedding []float32) error
	SearchGuidelines(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]GuidelineChunk, error)
	DeleteDocument(ctx context.Context, docID string) error
}

type GuidelineChunk struct {
	ID      string
	Score   float32
	Text    string
	DocType string
}

type knowledgeBase struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewKnowledgeBase(urlStr, apiKey, collectionName string) (KnowledgeBase, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port unless the URL says otherwise
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &knowledgeBase{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 dimension
	}, nil
}

// EnsureCollection implements KnowledgeBase.
func (k *knowledgeBase) EnsureCollection(ctx context.Context) error {
	exists, err := k.client.CollectionExists(ctx, k.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = k.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: k.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     k.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

// UpsertChunk implements KnowledgeBase.
func (k *knowledgeBase) UpsertChunk(ctx context.Context, docID, docType, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"doc_id":   docID,
			"doc_type": docType,
			"text":     text,
		}),
	}

	_, err := k.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: k.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}
	return nil
}

// SearchGuidelines implements KnowledgeBase.
func (k *knowledgeBase) SearchGuidelines(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]GuidelineChunk, error) {
	var filter *qdrant.Filter
	if docType != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("doc_type", docType),
			},
		}
	}

	searchResult, err := k.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: k.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var chunks []GuidelineChunk
	for _, point := range searchResult {
		chunk := GuidelineChunk{Score: point.Score}

		payload := point.Payload
		if docID, ok := payload["doc_id"]; ok {
			if val, ok := docID.GetKind().(*qdrant.Value_StringValue); ok {
				chunk.ID = val.StringValue
			}
		}
		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				chunk.Text = val.StringValue
			}
		}
		if dtype, ok := payload["doc_type"]; ok {
			if val, ok := dtype.GetKind().(*qdrant.Value_StringValue); ok {
				chunk.DocType = val.StringValue
			}
		}

		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

// DeleteDocument implements KnowledgeBase. Removes every chunk ingested under
// one document ID.
func (k *knowledgeBase) DeleteDocument(ctx context.Context, docID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("doc_id", docID),
		},
	}

	_, err := k.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: k.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
