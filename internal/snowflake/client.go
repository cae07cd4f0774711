package snowflake

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/snowflakedb/gosnowflake"
	"go.uber.org/zap"

	"github.com/pradeepsavadi/snowflake-observability/pkg/config"
	"github.com/pradeepsavadi/snowflake-observability/pkg/logger"
)

// ErrSourceUnavailable marks failures the dashboard treats as advisory: the
// queried view does not exist or the session role lacks privilege on it.
// Callers render an inline notice for these instead of failing the section.
var ErrSourceUnavailable = errors.New("source view unavailable")

type Client struct {
	db      *sql.DB
	timeout time.Duration
}

func NewClient(cfg config.SnowflakeConfig) (*Client, error) {
	dsn, err := gosnowflake.DSN(&gosnowflake.Config{
		Account:   cfg.Account,
		User:      cfg.User,
		Password:  cfg.Password,
		Role:      cfg.Role,
		Warehouse: cfg.Warehouse,
		Database:  cfg.Database,
		Schema:    cfg.Schema,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build snowflake dsn: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open snowflake connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to establish snowflake session: %w", err)
	}

	logger.Info("Snowflake client initialized",
		zap.String("account", cfg.Account),
		zap.String("role", cfg.Role),
		zap.String("warehouse", cfg.Warehouse),
	)

	return &Client{
		db:      db,
		timeout: time.Duration(cfg.QueryTimeout) * time.Second,
	}, nil
}

// NewClientFromDB wraps an already-open database handle. Tests use this with
// an in-memory SQLite database.
func NewClientFromDB(db *sql.DB, timeout time.Duration) *Client {
	return &Client{db: db, timeout: timeout}
}

func (c *Client) Close() error {
	return c.db.Close()
}

// Ping verifies the session is still usable.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// DB exposes the underlying handle for components that manage their own
// tables, such as the settings store in the packaged deployment.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Query executes one read-only statement and scans the full result set into
// a Table. Execution is synchronous; the only timeout is the session-level
// one configured on the client.
func (c *Client) Query(ctx context.Context, query string) (Table, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return Table{}, classify(err)
	}
	defer rows.Close()

	table, err := scan(rows)
	if err != nil {
		return Table{}, err
	}

	logger.Debug("Query executed",
		zap.Int("rows", table.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return table, nil
}

func scan(rows *sql.Rows) (Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read result columns: %w", err)
	}

	table := Table{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Table{}, fmt.Errorf("failed to scan result row: %w", err)
		}
		for i, v := range values {
			// Text columns arrive as []byte from some drivers.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return Table{}, fmt.Errorf("failed to iterate result rows: %w", err)
	}

	return table, nil
}

// Snowflake error codes for a missing object and for insufficient privilege
// on an ACCOUNT_USAGE view.
const (
	errObjectDoesNotExist    = 2003
	errInsufficientPrivilege = 3001
)

func classify(err error) error {
	var sferr *gosnowflake.SnowflakeError
	if errors.As(err, &sferr) {
		if sferr.Number == errObjectDoesNotExist || sferr.Number == errInsufficientPrivilege {
			return fmt.Errorf("%w: %s", ErrSourceUnavailable, sferr.Message)
		}
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "does not exist or not authorized") ||
		strings.Contains(msg, "insufficient privileges") ||
		strings.Contains(msg, "no such table") {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return fmt.Errorf("query failed: %w", err)
}
