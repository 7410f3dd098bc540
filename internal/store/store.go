// Package store defines the key/value contract the checklist persists through.
//
// Backends live in subpackages:
//
//	jsonstore   single JSON file (default)
//	sqlitestore SQLite database file
//	pgstore     Postgres table
//	s3store     one object per key in an S3 bucket
//	memstore    process memory
package store

import (
	"context"
	"errors"
)

// ErrClosed is returned by a KV after Close.
var ErrClosed = errors.New("store is closed")

// KV is a passive string store. Get reports ok=false for absent keys.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
