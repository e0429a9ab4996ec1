package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

type txContextKey string

const txKey txContextKey = "trx"

var ErrClosed = errors.New("store is closed")

type Config struct {
	// DSN is a go-sqlite3 data source name, e.g. "resto-manager.db" or
	// "file::memory:".
	DSN   string
	Debug bool
}

// DB is the handle to the local embedded database. Construct it once with
// New and share it; the schema is created lazily on first use.
type DB struct {
	cfg Config

	once    sync.Once
	initErr error
	conn    *gorm.DB
	version int64

	mu     sync.RWMutex
	closed bool
}

func New(cfg Config) *DB {
	return &DB{cfg: cfg}
}

// Init opens the database and applies pending migrations. It runs at most
// once; every caller, concurrent or not, receives the same outcome.
func (d *DB) Init(ctx context.Context) error {
	d.once.Do(func() {
		d.initErr = d.open(ctx)
	})
	return d.initErr
}

func (d *DB) open(ctx context.Context) error {
	cfg := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
	conn, err := gorm.Open(sqlite.Open(d.cfg.DSN), cfg)
	if err != nil {
		return fmt.Errorf("open store %q: %w", d.cfg.DSN, err)
	}
	if d.cfg.Debug {
		conn = conn.Debug()
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("get sql handle: %w", err)
	}
	// A single connection serializes writers and keeps in-memory databases
	// alive for the lifetime of the handle.
	sqlDB.SetMaxOpenConns(1)

	if err := conn.WithContext(ctx).Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
		return fmt.Errorf("configure store: %w", err)
	}

	version, err := Migrate(ctx, sqlDB, Migrations())
	if err != nil {
		return err
	}

	d.conn = conn
	d.version = version
	return nil
}

// Session returns a gorm handle bound to ctx, initializing the store on
// first use. Inside WithinTransaction it returns the transaction.
func (d *DB) Session(ctx context.Context) (*gorm.DB, error) {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx, nil
	}
	if err := d.Init(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return nil, ErrClosed
	}
	return d.conn.WithContext(ctx), nil
}

// WithinTransaction runs fn in a single transaction. Repositories called with
// the ctx passed to fn join that transaction.
func (d *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	conn, err := d.Session(ctx)
	if err != nil {
		return err
	}
	return conn.Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// Ping checks that the database answers.
func (d *DB) Ping(ctx context.Context) error {
	conn, err := d.Session(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// SchemaVersion reports the schema version applied by Init.
func (d *DB) SchemaVersion(ctx context.Context) (int64, error) {
	if err := d.Init(ctx); err != nil {
		return 0, err
	}
	return d.version, nil
}

func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.conn == nil {
		d.closed = true
		return nil
	}
	d.closed = true
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
