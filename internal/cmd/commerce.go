package cmd

import (
	"context"
	"log/slog"

	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/core/ports"
	"github.com/jcmexdev/storefront-lookup/internal/api-gateway/infra/adapters/service"
	"github.com/jcmexdev/storefront-lookup/internal/config"
	"github.com/jcmexdev/storefront-lookup/internal/pkg/cache"
)

// newCommerceClient picks the fake or REST client. The returned cache is nil
// unless REDIS_ADDR is set and reachable.
func newCommerceClient(ctx context.Context, cfg *config.Config) (ports.CommerceClient, cache.Cache, error) {
	if useFake {
		cfg.Commerce.Fake = true
	}
	if cfg.Commerce.Fake {
		slog.Warn("using in-memory commerce catalogue", "phone", service.FakeCustomerPhone)
		return service.NewFakeCommerceClient(), nil, nil
	}
	if err := cfg.Commerce.RequireCommerce(); err != nil {
		return nil, nil, err
	}

	var opts []service.Option
	var rc cache.Cache
	if cfg.Cache.RedisAddr != "" {
		rc = cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Telemetry.ServiceName)
		if err := rc.Ping(ctx); err != nil {
			slog.Warn("redis unreachable, response cache disabled", "addr", cfg.Cache.RedisAddr, "error", err)
			rc = nil
		} else {
			opts = append(opts, service.WithCache(rc, cfg.Cache.TTL))
		}
	}
	return service.NewRESTCommerceClient(cfg.Commerce, opts...), rc, nil
}
