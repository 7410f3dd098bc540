package cli

import (
	"context"
	"fmt"

	"github.com/idilsaglam/checklist/internal/config"
	"github.com/idilsaglam/checklist/internal/store"
	"github.com/idilsaglam/checklist/internal/store/jsonstore"
	"github.com/idilsaglam/checklist/internal/store/memstore"
	"github.com/idilsaglam/checklist/internal/store/pgstore"
	"github.com/idilsaglam/checklist/internal/store/s3store"
	"github.com/idilsaglam/checklist/internal/store/sqlitestore"
)

// openKV opens the backend named in cfg.
func openKV(ctx context.Context, cfg *config.Config) (store.KV, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return jsonstore.Open(cfg.DataDir)
	case config.BackendSQLite:
		return sqlitestore.Open(ctx, cfg.DataDir)
	case config.BackendPostgres:
		dsn := cfg.PostgresDSN
		if dsn == "" {
			dsn = pgstore.DefaultDSN
		}
		return pgstore.Open(ctx, dsn)
	case config.BackendS3:
		return s3store.New(ctx, s3store.Config{
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			PathStyle:       cfg.S3.PathStyle,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
	case config.BackendMemory:
		return memstore.New(nil), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
}
