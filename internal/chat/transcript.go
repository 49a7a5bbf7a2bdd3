package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TranscriptMessage is one stored turn of a conversation.
type TranscriptMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// TranscriptStore persists conversation transcripts.
type TranscriptStore interface {
	Append(ctx context.Context, conversationID string, msgs ...TranscriptMessage) error
	List(ctx context.Context, conversationID string, limit int64) ([]TranscriptMessage, error)
}

// RedisTranscriptStore keeps transcripts in Redis lists with a rolling TTL,
// so abandoned conversations age out on their own.
type RedisTranscriptStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

func NewRedisTranscriptStore(client *redis.Client, ttl time.Duration) *RedisTranscriptStore {
	if client == nil {
		panic("chat: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &RedisTranscriptStore{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("medvoy.internal.chat.transcript"),
	}
}

func transcriptKey(conversationID string) string {
	return fmt.Sprintf("transcript:%s", conversationID)
}

func (s *RedisTranscriptStore) Append(ctx context.Context, conversationID string, msgs ...TranscriptMessage) error {
	ctx, span := s.tracer.Start(ctx, "chat.append_transcript")
	defer span.End()

	if len(msgs) == 0 {
		return nil
	}

	values := make([]any, 0, len(msgs))
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("chat: failed to marshal transcript message: %w", err)
		}
		values = append(values, data)
	}

	key := transcriptKey(conversationID)
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("chat: failed to persist transcript: %w", err)
	}
	return nil
}

func (s *RedisTranscriptStore) List(ctx context.Context, conversationID string, limit int64) ([]TranscriptMessage, error) {
	ctx, span := s.tracer.Start(ctx, "chat.list_transcript")
	defer span.End()

	start := int64(0)
	if limit > 0 {
		start = -limit
	}
	raw, err := s.redis.LRange(ctx, transcriptKey(conversationID), start, -1).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("chat: failed to load transcript: %w", err)
	}

	out := make([]TranscriptMessage, 0, len(raw))
	for _, item := range raw {
		var m TranscriptMessage
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("chat: failed to decode transcript message: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}
