package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/suqpos/backend-go/internal/config"
	"github.com/suqpos/backend-go/internal/domain"
)

const (
	snapshotKeyPrefix  = "metrics:snapshot"
	scanBatchSize      = 100
	defaultSnapshotTTL = time.Minute
)

// SnapshotCache fronts metrics computation. Entries are TTL-bounded and
// the whole prefix is invalidated on any sale/expense/product mutation.
type SnapshotCache interface {
	Get(ctx context.Context, period domain.Period, rng domain.TimeRange) (*domain.MetricsSnapshot, bool, error)
	Set(ctx context.Context, period domain.Period, rng domain.TimeRange, snap *domain.MetricsSnapshot) error
	InvalidateAll(ctx context.Context) error
}

type redisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSnapshotCache struct{}

func NewSnapshotCache(cfg config.CacheConfig) (SnapshotCache, error) {
	if !cfg.Enabled {
		return &noopSnapshotCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.SnapshotTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}

	return &redisSnapshotCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopSnapshotCache() SnapshotCache {
	return &noopSnapshotCache{}
}

func (c *redisSnapshotCache) Get(ctx context.Context, period domain.Period, rng domain.TimeRange) (*domain.MetricsSnapshot, bool, error) {
	key := buildSnapshotKey(period, rng)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var snap domain.MetricsSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, false, fmt.Errorf("decode metrics snapshot cache: %w", err)
	}

	return &snap, true, nil
}

func (c *redisSnapshotCache) Set(ctx context.Context, period domain.Period, rng domain.TimeRange, snap *domain.MetricsSnapshot) error {
	key := buildSnapshotKey(period, rng)
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode metrics snapshot cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisSnapshotCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, snapshotKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopSnapshotCache) Get(ctx context.Context, period domain.Period, rng domain.TimeRange) (*domain.MetricsSnapshot, bool, error) {
	return nil, false, nil
}

func (n *noopSnapshotCache) Set(ctx context.Context, period domain.Period, rng domain.TimeRange, snap *domain.MetricsSnapshot) error {
	return nil
}

func (n *noopSnapshotCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildSnapshotKey(period domain.Period, rng domain.TimeRange) string {
	parts := []string{"period=" + string(period)}

	// week/month/year re-resolve their lower bound from now on every
	// request, so hashing those timestamps would make every key unique
	// and the cache could never hit. Only bounds that are stable across
	// identical requests go into the key: custom carries caller-chosen
	// dates, today is anchored at local midnight. For the rest the
	// period name identifies the window; staleness is bounded by the TTL.
	if period == domain.PeriodCustom || period == domain.PeriodToday {
		if rng.From != nil {
			parts = append(parts, "from="+rng.From.UTC().Format(time.RFC3339Nano))
		}
		if rng.To != nil {
			parts = append(parts, "to="+rng.To.UTC().Format(time.RFC3339Nano))
		}
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", snapshotKeyPrefix, hex.EncodeToString(hash[:]))
}
