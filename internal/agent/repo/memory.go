package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
	errx "github.com/malcolmcuady/portfolio-server/internal/core/error"
	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

// RedisMemoryRepository stores one JSON record per conversation message under
// a per-session list key. Search embeds the query and ranks stored records by
// cosine similarity. Expiry is handled entirely by the key TTL, refreshed on
// every append.
type RedisMemoryRepository struct {
	rdb      redis.Cmdable
	embedder Embedder
	ttl      time.Duration
}

var _ model.MemoryRepository = (*RedisMemoryRepository)(nil)

func NewRedisMemoryRepository(rdb redis.Cmdable, embedder Embedder, ttl time.Duration) *RedisMemoryRepository {
	return &RedisMemoryRepository{rdb: rdb, embedder: embedder, ttl: ttl}
}

func (r *RedisMemoryRepository) memoryKey(scopeID string) string {
	return fmt.Sprintf("memory:%s:turns", scopeID)
}

// Add appends the turn messages as individual records, each carrying the turn
// metadata plus its role, and touches the key TTL.
func (r *RedisMemoryRepository) Add(ctx context.Context, turns []model.TurnMessage, opts model.AddOptions) error {
	if opts.ScopeID == "" {
		return fmt.Errorf("scope id is required")
	}
	key := r.memoryKey(opts.ScopeID)
	now := time.Now().UTC()

	for _, turn := range turns {
		if turn.Content == "" {
			continue
		}
		emb, err := r.embedder.Embed(ctx, turn.Content)
		if err != nil {
			logx.Error().Err(err).Str("scope_id", opts.ScopeID).Msg("failed to embed memory text")
			return err
		}

		rec := model.MemoryRecord{
			Text: turn.Content,
			Metadata: map[string]any{
				"role":      turn.Role,
				"timestamp": now.Format(time.RFC3339),
				"intent":    opts.Metadata.Intent,
				"sentiment": string(opts.Metadata.Sentiment),
				"sources":   opts.Metadata.Sources,
				"attempts":  opts.Metadata.Attempts,
			},
			Embedding: emb,
			CreatedAt: now,
		}

		b, err := json.Marshal(rec)
		if err != nil {
			logx.Error().Err(err).Str("scope_id", opts.ScopeID).Msg("failed to marshal memory record")
			return fmt.Errorf("marshal memory record: %w", err)
		}

		if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to push memory record to redis")
			return errx.WrapRedis(err)
		}
	}

	// extend TTL on touch
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on memory key")
		}
	}
	return nil
}

// Search loads the session's records and returns the opts.Limit most similar
// to the query, best first. A session with no memories yields an empty slice.
func (r *RedisMemoryRepository) Search(ctx context.Context, query string, opts model.SearchOptions) ([]model.MemoryRecord, error) {
	if opts.ScopeID == "" {
		return nil, fmt.Errorf("scope id is required")
	}
	key := r.memoryKey(opts.ScopeID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.MemoryRecord{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load memory records from redis")
		return nil, errx.WrapRedis(err)
	}
	if len(rows) == 0 {
		return []model.MemoryRecord{}, nil
	}

	queryEmb, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	type scored struct {
		rec   model.MemoryRecord
		score float64
	}
	candidates := make([]scored, 0, len(rows))
	for i, row := range rows {
		var rec model.MemoryRecord
		if err := json.Unmarshal([]byte(row), &rec); err != nil {
			logx.Warn().Err(err).Str("key", key).Int("index", i).Msg("skipping unreadable memory record")
			continue
		}
		candidates = append(candidates, scored{rec: rec, score: cosineSimilarity(queryEmb, rec.Embedding)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	limit := opts.Limit
	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}

	out := make([]model.MemoryRecord, 0, limit)
	for _, c := range candidates[:limit] {
		out = append(out, c.rec)
	}
	return out, nil
}

// Cleanup reports zero counts: expiry of memory keys is delegated to the
// Redis TTL set on append, so there is nothing to delete by hand.
func (r *RedisMemoryRepository) Cleanup(ctx context.Context) (int, int, error) {
	return 0, 0, nil
}
