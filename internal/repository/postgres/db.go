package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"devevent/internal/domain"
)

// Provider hands out the shared database handle. Repositories acquire it on every
// operation so a failed first connection can be retried by a later request.
type Provider interface {
	Acquire(ctx context.Context) (*sql.DB, error)
}

type staticProvider struct {
	db *sql.DB
}

// Static returns a Provider that always hands out db.
func Static(db *sql.DB) Provider {
	return &staticProvider{db: db}
}

func (p *staticProvider) Acquire(context.Context) (*sql.DB, error) {
	return p.db, nil
}

type connState int

const (
	stateUninitialized connState = iota
	stateConnecting
	stateConnected
)

func (s connState) String() string {
	switch s {
	case stateConnecting:
		return "connecting"
	case stateConnected:
		return "connected"
	default:
		return "uninitialized"
	}
}

// ConnectorConfig configures a lazily opened Postgres connection.
type ConnectorConfig struct {
	URL            string
	MaxOpenConns   int
	ConnectTimeout time.Duration
	AutoMigrate    bool
}

// Connector is the process-wide cached database connection.
// State moves uninitialized -> connecting -> connected; a failed attempt goes back
// to uninitialized so the next Acquire tries again. Concurrent callers wait for
// the attempt in flight instead of opening their own, and share its result.
type Connector struct {
	open     func(ctx context.Context) (*sql.DB, error)
	mu       sync.Mutex
	state    connState
	db       *sql.DB
	inflight *connectAttempt
}

type connectAttempt struct {
	done chan struct{}
	db   *sql.DB
	err  error
}

// NewConnector returns a Connector for cfg. No connection is made until the first Acquire.
func NewConnector(cfg ConnectorConfig) *Connector {
	return newConnector(func(ctx context.Context) (*sql.DB, error) {
		return openPostgres(ctx, cfg)
	})
}

func newConnector(open func(ctx context.Context) (*sql.DB, error)) *Connector {
	return &Connector{open: open}
}

// Acquire returns the cached handle, connecting first if needed.
// The dial runs outside the lock. Failures wrap domain.ErrConnection.
func (c *Connector) Acquire(ctx context.Context) (*sql.DB, error) {
	c.mu.Lock()
	if c.state == stateConnected {
		db := c.db
		c.mu.Unlock()
		return db, nil
	}
	attempt := c.inflight
	if attempt == nil {
		attempt = &connectAttempt{done: make(chan struct{})}
		c.inflight = attempt
		c.state = stateConnecting
		c.mu.Unlock()
		c.connect(ctx, attempt)
	} else {
		c.mu.Unlock()
	}

	select {
	case <-attempt.done:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", domain.ErrConnection, ctx.Err())
	}
	if attempt.err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConnection, attempt.err)
	}
	return attempt.db, nil
}

func (c *Connector) connect(ctx context.Context, attempt *connectAttempt) {
	db, err := c.open(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	attempt.db, attempt.err = db, err
	c.inflight = nil
	if err != nil {
		c.state = stateUninitialized
	} else {
		c.db = db
		c.state = stateConnected
	}
	close(attempt.done)
}

// State reports the current lifecycle state.
func (c *Connector) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.String()
}

// Close closes the cached handle, if any, and resets the connector.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	c.state = stateUninitialized
	return err
}

func openPostgres(ctx context.Context, cfg ConnectorConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// Ping acquires the connection, if needed, and checks it is still alive.
func (c *Connector) Ping(ctx context.Context) error {
	db, err := c.Acquire(ctx)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}
	return nil
}
