package app

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-creation-engine/internal/clients/documents"
	"github.com/KirkDiggler/dnd-creation-engine/internal/config"
	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
	cacherepo "github.com/KirkDiggler/dnd-creation-engine/internal/repositories/documents"
)

const redisPingTimeout = 5 * time.Second

// Documents is the document store together with the resources it owns
type Documents struct {
	Store *documents.Store
	redis *redis.Client
}

// Close releases the Redis connection, if any
func (d *Documents) Close() error {
	if d.redis == nil {
		return nil
	}
	return d.redis.Close()
}

// NewSource builds the configured upstream
func NewSource(cfg *config.Config, logger *zap.Logger) (documents.Source, error) {
	switch cfg.Documents.Source {
	case config.SourceFilesystem:
		return documents.NewFilesystem(cfg.Documents.DataDir), nil
	case config.SourceGitHub:
		return documents.NewGitHub(&documents.GitHubConfig{
			Owner:       cfg.GitHub.Owner,
			Repo:        cfg.GitHub.Repo,
			Branch:      cfg.GitHub.Branch,
			Token:       cfg.GitHub.Token,
			APIURL:      cfg.GitHub.APIURL,
			RawURL:      cfg.GitHub.RawURL,
			RawFallback: cfg.GitHub.RawFallback,
			HTTPClient:  &http.Client{Timeout: cfg.Documents.ClientTimeout},
			Logger:      logger.Named("github"),
		})
	}
	return nil, dnderr.InvalidArgumentf("unsupported document source '%s'", cfg.Documents.Source)
}

// NewDocuments wires the source, the persistent cache and the store. Redis
// backs the cache when REDIS_URL is set and reachable; otherwise documents
// are cached on disk.
func NewDocuments(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Documents, error) {
	source, err := NewSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	out := &Documents{}
	var cache cacherepo.Repository

	if cfg.Redis.URL != "" {
		client, err := connectRedis(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Warn("redis unavailable, caching documents on disk", zap.Error(err))
		} else {
			out.redis = client
			cache = cacherepo.NewRedisRepository(&cacherepo.RedisRepoConfig{
				Client: client,
				TTL:    cfg.Redis.CacheTTL,
			})
			logger.Info("caching documents in redis")
		}
	}
	if cache == nil && cfg.Documents.CacheDir != "" {
		cache = cacherepo.NewDisk(cfg.Documents.CacheDir)
		logger.Info("caching documents on disk", zap.String("dir", cfg.Documents.CacheDir))
	}

	out.Store, err = documents.NewStore(&documents.StoreConfig{
		Source:      source,
		Cache:       cache,
		ScanFolders: cfg.Documents.ScanFolders,
		Logger:      logger.Named("documents"),
	})
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	return out, nil
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "invalid REDIS_URL")
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to connect to redis")
	}
	return client, nil
}
