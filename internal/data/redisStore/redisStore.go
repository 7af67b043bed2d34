package redisStore

import (
	"context"
	"sync"
	"time"

	"github.com/nvasani/inspectapi/pkg/logx"
	"github.com/redis/go-redis/v9"
)

var (
	instances = make(map[int]*Store)
	mu        sync.RWMutex
	logger    *logx.Logger
	once      sync.Once
)

// Options carries the connection settings; callers resolve them from
// configuration, this package never reads the environment.
type Options struct {
	Addr     string
	Password string
	DB       int
}

type Store struct {
	client *redis.Client
	DB     int
}

// GetRedisStore returns the shared store for the requested logical DB,
// creating it on first use. Returns nil when Redis is unreachable so the
// caller can fall back to an in-memory store.
func GetRedisStore(ctx context.Context, opts Options) *Store {

	mu.RLock()
	instance, exists := instances[opts.DB]
	mu.RUnlock()

	if exists {
		return instance
	}

	mu.Lock()
	defer mu.Unlock()

	if instance, exists = instances[opts.DB]; exists {
		return instance
	}
	return createNewStore(ctx, opts)

}

func initLogger(db int) {
	if logger == nil {
		logger = logx.NewLogger("Redis Store: " + string(rune('0'+db)))
	}
}

func closeRedisStores(ctx context.Context) {
	<-ctx.Done()
	logger.Info("Closing Redis Stores")
	mu.Lock()
	defer mu.Unlock()
	for _, store := range instances {
		err := store.client.Close()
		if err != nil {
			logger.Error("Error closing redis client", "error", err)
		}
	}
	logger.Info("Redis Store Closed successfully")
}

func createNewStore(ctx context.Context, opts Options) *Store {
	newClient := redis.NewClient(&redis.Options{
		Addr:                  opts.Addr,
		Password:              opts.Password,
		DB:                    opts.DB,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	initLogger(opts.DB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline: ", "error", err.Error())
		return nil
	}

	logger.Info("Redis Store init successfully")

	newStore := &Store{
		client: newClient,
		DB:     opts.DB,
	}

	instances[opts.DB] = newStore
	once.Do(func() {
		go closeRedisStores(ctx)
	})
	return newStore

}

// Only in a _test.go file or behind a build tag
func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
