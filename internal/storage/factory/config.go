package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/sdsdsdw/shunting-yard-algo/internal/storage"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage/es"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage/pg"
	"github.com/sdsdsdw/shunting-yard-algo/pkg/utils"
)

const DefaultHistoryFile = "calc_history.jsonl"

type StorageConfig struct {
	storage.Type
	Pg       *pg.PoolConfig
	Es       *es.ClientConfig
	FilePath string
}

// LoadEnv reads the history backend configuration. STORAGE_TYPE defaults to in_mem.
func LoadEnv() (*StorageConfig, error) {
	storageType := storage.Type(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		slog.Info("STORAGE_TYPE is not set, using in-memory history")
		storageType = storage.InMem
	}
	if !isSupported(storageType) {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			storage.Types())
	}

	cfg := &StorageConfig{Type: storageType}

	switch storageType {
	case storage.ES:
		cfg.Es = &es.ClientConfig{
			Addresses: utils.RemoveEmptyStrings(utils.SplitAndTrim(os.Getenv("ES_ADDRESSES"), ",")),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if cfg.Es.IndexName == "" {
			cfg.Es.IndexName = es.DefaultIndexName
		}
		if len(cfg.Es.Addresses) == 0 {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Es.Addresses)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: ES_ADDRESSES is missing")
		}
	case storage.PG:
		cfg.Pg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if cfg.Pg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
		if v := os.Getenv("PG_MAX_CONNS"); v != "" {
			n, err := strconv.ParseInt(v, 10, 32)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid PG_MAX_CONNS %q: must be a positive integer", v)
			}
			cfg.Pg.MaxConns = int32(n)
		}
	case storage.JsonFile:
		cfg.FilePath = os.Getenv("HISTORY_FILE")
		if cfg.FilePath == "" {
			cfg.FilePath = DefaultHistoryFile
		}
	}

	return cfg, nil
}

func isSupported(t storage.Type) bool {
	for _, supported := range storage.Types() {
		if t == supported {
			return true
		}
	}
	return false
}
