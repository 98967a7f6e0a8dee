package db

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"conciliations-server/src/config"
)

// Target names one of the two logical stores. The value doubles as the env
// var prefix its connection parameters are read from.
type Target string

const (
	TargetTransactions  Target = "DB"
	TargetOrganizations Target = "ORG_DB"
)

// Registry lazily opens and caches one pool per target for the life of the
// process. Pools hand out a connection per request, so cached pools are safe
// to share across concurrent sessions.
type Registry struct {
	mu    sync.Mutex
	pools map[Target]*pgxpool.Pool
}

func NewRegistry() *Registry {
	return &Registry{pools: make(map[Target]*pgxpool.Pool)}
}

// Acquire returns the pool for target, opening it on first use.
func (r *Registry) Acquire(ctx context.Context, target Target) (*pgxpool.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pool, ok := r.pools[target]; ok {
		return pool, nil
	}

	connString, err := config.ConnString(string(target))
	if err != nil {
		return nil, err
	}
	pool, err := connect(ctx, connString)
	if err != nil {
		return nil, err
	}
	r.pools[target] = pool
	return pool, nil
}

// WithTx runs fn inside one transaction on the target store: commit on nil
// return, rollback and propagate otherwise.
func (r *Registry) WithTx(ctx context.Context, target Target, fn func(pgx.Tx) error) error {
	pool, err := r.Acquire(ctx, target)
	if err != nil {
		return err
	}
	return pgx.BeginFunc(ctx, pool, fn)
}

func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for target, pool := range r.pools {
		pool.Close()
		delete(r.pools, target)
	}
}

func connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
