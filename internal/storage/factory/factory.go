package factory

import (
	"context"
	"fmt"

	"github.com/sdsdsdw/shunting-yard-algo/internal/storage"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage/es"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage/in_mem"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage/pg"
	pkgserver "github.com/sdsdsdw/shunting-yard-algo/pkg/server"
)

// Backend bundles a history store with its health check and cleanup.
type Backend struct {
	Store  storage.Store
	Health pkgserver.HealthChecker
	Close  func()
}

// NewBackend creates the history store selected by cfg.Type.
func NewBackend(ctx context.Context, cfg StorageConfig) (*Backend, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return &Backend{
			Store:  pg.NewStore(pool),
			Health: pg.NewHealthChecker(pool),
			Close:  pool.Close,
		}, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		s, err := es.NewStore(ctx, *cfg.Es)
		if err != nil {
			return nil, fmt.Errorf("failed to create Elasticsearch store: %w", err)
		}
		return &Backend{Store: s, Health: s, Close: func() {}}, nil

	case storage.JsonFile:
		return &Backend{
			Store:  storage.NewJsonFileStore(cfg.FilePath),
			Health: pkgserver.NewOkHealthChecker(),
			Close:  func() {},
		}, nil

	case storage.InMem:
		return &Backend{
			Store:  in_mem.NewInMemStore(),
			Health: pkgserver.NewOkHealthChecker(),
			Close:  func() {},
		}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
