package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/meeting-capture/internal/domain/entities"
	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/pkg/config"
)

// NewRedisClient connects to Redis and pings it
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Println("✅ Redis connected successfully")
	return client, nil
}

// DecisionsKey is the hash holding a scope's propagated decisions, one field per artifact key
func DecisionsKey(scope entities.Scope) string {
	return fmt.Sprintf("scope:%s:%s:decisions", scope.Type, scope.ID)
}

// MeetingDecisionsKey lists the artifact keys a meeting contributed, in write order
func MeetingDecisionsKey(meetingID uuid.UUID) string {
	return fmt.Sprintf("meeting:%s:decisions", meetingID)
}

// putDecisionScript sets the hash field and appends the meeting index in one step.
// KEYS: scope hash, meeting index. ARGV: artifact key, payload.
var putDecisionScript = redis.NewScript(`
if redis.call("HSETNX", KEYS[1], ARGV[1], ARGV[2]) == 1 then
	redis.call("RPUSH", KEYS[2], ARGV[1])
	return 1
end
return 0
`)

// RedisContextStore writes decisions into a scope hash with HSETNX
type RedisContextStore struct {
	client *redis.Client
}

var (
	_ gateways.ContextStore  = (*RedisContextStore)(nil)
	_ gateways.ContextReader = (*RedisContextStore)(nil)
)

// NewRedisContextStore creates a new Redis-backed context store
func NewRedisContextStore(client *redis.Client) *RedisContextStore {
	return &RedisContextStore{client: client}
}

// PutDecision stores the entry under key once; later writes of the same key are ignored
func (s *RedisContextStore) PutDecision(ctx context.Context, key string, entry gateways.ContextEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode decision: %w", err)
	}

	keys := []string{DecisionsKey(entry.Scope), MeetingDecisionsKey(entry.MeetingID)}
	if err := putDecisionScript.Run(ctx, s.client, keys, key, payload).Err(); err != nil {
		return fmt.Errorf("failed to write decision: %w", err)
	}
	return nil
}

// ListDecisions returns the decisions recorded in a scope, oldest first
func (s *RedisContextStore) ListDecisions(ctx context.Context, scope entities.Scope) ([]gateways.ContextEntry, error) {
	raw, err := s.client.HGetAll(ctx, DecisionsKey(scope)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read decisions: %w", err)
	}

	entries := make([]gateways.ContextEntry, 0, len(raw))
	for _, v := range raw {
		var e gateways.ContextEntry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			return nil, fmt.Errorf("failed to decode decision: %w", err)
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RecordedAt.Before(entries[j].RecordedAt)
	})
	return entries, nil
}
