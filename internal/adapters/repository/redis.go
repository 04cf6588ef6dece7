package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fieldhouse/combine/internal/domain/model"
	"github.com/fieldhouse/combine/pkg/metrics"
)

const defaultKeyPrefix = "combine"

// RedisStore persists participants as JSON documents in Redis. Each event
// keeps a set of participant ids next to the documents so listing never
// scans the keyspace, and import batches apply through a transactional
// pipeline so partial imports cannot be observed.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	chunkSize int
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix overrides the key namespace, mostly for tests sharing a
// Redis instance.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// WithChunkSize bounds how many documents a single MGET fetches.
func WithChunkSize(n int) RedisOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithClient injects an existing client, for tests against miniredis or a
// shared pool.
func WithClient(c redis.UniversalClient) RedisOption {
	return func(s *RedisStore) {
		s.client = c
	}
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, addr string, db int, opts ...RedisOption) (*RedisStore, error) {
	s := &RedisStore{
		keyPrefix: defaultKeyPrefix,
		chunkSize: 400,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = redis.NewClient(&redis.Options{Addr: addr, DB: db})
	}
	if err := s.client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return s, nil
}

func (s *RedisStore) participantKey(eventID, id string) string {
	return fmt.Sprintf("%s:event:%s:participant:%s", s.keyPrefix, eventID, id)
}

func (s *RedisStore) idsKey(eventID string) string {
	return fmt.Sprintf("%s:event:%s:ids", s.keyPrefix, eventID)
}

func (s *RedisStore) importsKey(eventID string) string {
	return fmt.Sprintf("%s:event:%s:imports", s.keyPrefix, eventID)
}

func (s *RedisStore) Get(ctx context.Context, eventID, id string) (*model.Participant, error) {
	defer s.observe(time.Now())

	raw, err := s.client.Get(ctx, s.participantKey(eventID, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get participant: %w", err)
	}

	var p model.Participant
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode participant %s: %w", id, err)
	}
	return &p, nil
}

func (s *RedisStore) ListByEvent(ctx context.Context, eventID string) ([]*model.Participant, error) {
	defer s.observe(time.Now())

	ids, err := s.client.SMembers(ctx, s.idsKey(eventID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list participant ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	out := make([]*model.Participant, 0, len(ids))
	for start := 0; start < len(ids); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		keys := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			keys = append(keys, s.participantKey(eventID, id))
		}

		values, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, fmt.Errorf("fetch participants: %w", err)
		}
		for i, v := range values {
			raw, ok := v.(string)
			if !ok {
				// Document expired or deleted after the set read; skip it.
				continue
			}
			var p model.Participant
			if err := json.Unmarshal([]byte(raw), &p); err != nil {
				return nil, fmt.Errorf("decode participant %s: %w", ids[start+i], err)
			}
			out = append(out, &p)
		}
	}

	sortParticipants(out)
	return out, nil
}

func (s *RedisStore) CountByEvent(ctx context.Context, eventID string) (int, error) {
	defer s.observe(time.Now())

	n, err := s.client.SCard(ctx, s.idsKey(eventID)).Result()
	if err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return int(n), nil
}

func (s *RedisStore) ApplyBatch(ctx context.Context, eventID string, batch Batch) error {
	defer s.observe(time.Now())

	pipe := s.client.TxPipeline()
	for _, p := range append(batch.Creates, batch.Updates...) {
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode participant %s: %w", p.ID, err)
		}
		pipe.Set(ctx, s.participantKey(eventID, p.ID), raw, 0)
		pipe.SAdd(ctx, s.idsKey(eventID), p.ID)
	}
	if batch.Log != nil {
		raw, err := json.Marshal(batch.Log)
		if err != nil {
			return fmt.Errorf("encode import log: %w", err)
		}
		pipe.RPush(ctx, s.importsKey(eventID), raw)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		metrics.RecordStoreBatchError()
		return fmt.Errorf("%w: %v", ErrBatchFailed, err)
	}
	metrics.RecordStoreBatchSize(batch.Size())
	return nil
}

func (s *RedisStore) ImportLog(ctx context.Context, eventID string) ([]model.ImportLogEntry, error) {
	defer s.observe(time.Now())

	raws, err := s.client.LRange(ctx, s.importsKey(eventID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch import log: %w", err)
	}

	out := make([]model.ImportLogEntry, 0, len(raws))
	for _, raw := range raws {
		var e model.ImportLogEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("decode import log entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) observe(start time.Time) {
	metrics.RecordStoreQueryLatency(float64(time.Since(start).Microseconds()) / 1000.0)
}
