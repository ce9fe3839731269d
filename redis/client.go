package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/bsm/redislock"
	"github.com/go-redis/redis/v8"
	"github.com/kelseyhightower/envconfig"
	"mediscreen.com/prescreen/types"
	"net"
	"time"
)

type DB int
type ReleaseLock func() error

var ErrNotFound = errors.New("redis: key not found")

type Client struct {
	client         redis.UniversalClient
	lockExpiration time.Duration
	recordTTL      time.Duration
}

type Config struct {
	LockExpirationSeconds   int     `envconfig:"PRESCREEN_REDIS_LOCK_EXPIRATION" default:"3"`
	RecordTTLHours          int     `envconfig:"PRESCREEN_REDIS_RECORD_TTL_HOURS" default:"720"`
	Host                    string  `envconfig:"PRESCREEN_REDIS_HOST" required:"true"`
	Port                    string  `envconfig:"PRESCREEN_REDIS_PORT" required:"true"`
	HASentinelPort          string  `envconfig:"PRESCREEN_REDIS_HA_SENTINEL_PORT" default:"26379"`
	HASentinelMasterName    string  `envconfig:"PRESCREEN_REDIS_HA_MASTER_NAME" default:"mymaster"`
	Password                string  `envconfig:"PRESCREEN_REDIS_AUTH_PASSWORD" default:""`
	AuthRequired            bool    `envconfig:"PRESCREEN_REDIS_AUTH_REQUIRED" default:"false"`
	HAMode                  bool    `envconfig:"PRESCREEN_REDIS_HA_MODE" default:"false"`
	HASentinelSocketTimeout float32 `envconfig:"PRESCREEN_REDIS_SOCKET_TIMEOUT" default:"0.5"`
}

func NewClient(db DB) (*Client, error) {
	cfg, err := readEnvironment()
	if err != nil {
		return nil, err
	}
	return NewClientFrom(redis.NewUniversalClient(cfg.universalOptions(db)), cfg), nil
}

// NewClientFrom wraps an existing connection.
func NewClientFrom(client redis.UniversalClient, cfg *Config) *Client {
	return &Client{
		client:         client,
		lockExpiration: time.Duration(cfg.LockExpirationSeconds) * time.Second,
		recordTTL:      time.Duration(cfg.RecordTTLHours) * time.Hour,
	}
}

// universalOptions points at the sentinel in HA mode, which makes go-redis
// build a failover client, and at the plain server otherwise.
func (cfg *Config) universalOptions(db DB) *redis.UniversalOptions {
	options := &redis.UniversalOptions{
		Addrs:      []string{net.JoinHostPort(cfg.Host, cfg.Port)},
		DB:         int(db),
		MaxRetries: 6,
	}
	if cfg.HAMode {
		timeout := time.Duration(cfg.HASentinelSocketTimeout * float32(time.Second))
		options.Addrs = []string{net.JoinHostPort(cfg.Host, cfg.HASentinelPort)}
		options.MasterName = cfg.HASentinelMasterName
		options.ReadTimeout = timeout
		options.WriteTimeout = timeout
	}
	if cfg.AuthRequired {
		options.Password = cfg.Password
	}
	return options
}

func CallRecordKey(callSid string) string {
	return "call:" + callSid
}

// SaveCallRecord stores the record under its call key. Concurrent writers
// for the same call are serialized with a lock.
func (client *Client) SaveCallRecord(ctx context.Context, record types.CallRecord) (err error) {
	key := CallRecordKey(record.CallSid)
	releaseLock, err := client.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := releaseLock(); err == nil {
			err = releaseErr
		}
	}()
	return client.SaveDoc(ctx, key, record, client.recordTTL)
}

func (client *Client) GetCallRecord(ctx context.Context, callSid string) (types.CallRecord, error) {
	var record types.CallRecord
	err := client.GetDoc(ctx, CallRecordKey(callSid), &record)
	return record, err
}

func (client *Client) GetDoc(ctx context.Context, redisKey string, doc interface{}) error {
	b, err := client.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, doc)
}

// Lock takes a short-lived lock on redisKey, retrying for about two
// seconds before giving up.
func (client *Client) Lock(ctx context.Context, redisKey string) (ReleaseLock, error) {
	retry := redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 20)
	lock, err := redislock.New(client.client).
		Obtain(ctx, "lock:"+redisKey, client.lockExpiration, &redislock.Options{RetryStrategy: retry})
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", redisKey, err)
	}
	return func() error {
		return lock.Release(ctx)
	}, nil
}

func (client *Client) SaveDoc(ctx context.Context, redisKey string, document interface{}, ttl time.Duration) error {
	b, err := json.Marshal(document)
	if err != nil {
		return err
	}
	return client.client.Set(ctx, redisKey, b, ttl).Err()
}

func (client *Client) Ping(ctx context.Context) error {
	return client.client.Ping(ctx).Err()
}

func (client *Client) Close() error {
	return client.client.Close()
}

func readEnvironment() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("redis config: %w", err)
	}
	return cfg, nil
}
