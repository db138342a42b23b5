package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-storefront/internal/config"
	"go-storefront/internal/features/order"

	"go.uber.org/zap"

	// Drivers registered for the configured warehouse backend.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS order_export (
	order_id      VARCHAR(32) PRIMARY KEY,
	order_number  VARCHAR(64),
	customer_name VARCHAR(255),
	total         DECIMAL(12,2),
	status        VARCHAR(32),
	placed_at     TIMESTAMP
)`

// Exporter mirrors recent orders into a relational warehouse for BI tooling.
// Supported drivers are "postgres" and "mysql"; an empty driver disables the
// exporter.
type Exporter struct {
	Driver string
	DSN    string
	Orders order.OrderService
	Logger *zap.Logger
}

func NewExporter(cfg *config.Config, orders order.OrderService, logger *zap.Logger) (*Exporter, error) {
	switch cfg.WarehouseDriver {
	case "", "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported warehouse driver '%s'", cfg.WarehouseDriver)
	}

	return &Exporter{
		Driver: cfg.WarehouseDriver,
		DSN:    cfg.WarehouseDSN,
		Orders: orders,
		Logger: logger,
	}, nil
}

func (e *Exporter) Enabled() bool {
	return e.Driver != "" && e.DSN != ""
}

// ExportRecent copies orders placed in the window into the warehouse,
// upserting on order id so repeated runs are safe.
func (e *Exporter) ExportRecent(ctx context.Context, window time.Duration) (int, error) {
	if !e.Enabled() {
		return 0, nil
	}

	orders, err := e.Orders.ListSince(ctx, time.Now().Add(-window))
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}

	db, err := sql.Open(e.Driver, e.DSN)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return 0, fmt.Errorf("warehouse unreachable: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return 0, fmt.Errorf("ensure export table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, e.upsertSQL())
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	exported := 0
	for _, o := range orders {
		_, err := stmt.ExecContext(ctx,
			o.ID.Hex(), o.Number, o.CustomerName, o.Total, o.Status, o.CreatedAt)
		if err != nil {
			return exported, fmt.Errorf("export order %s: %w", o.Number, err)
		}
		exported++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	e.Logger.Info("warehouse export complete",
		zap.Int("orders", exported),
		zap.String("driver", e.Driver))
	return exported, nil
}

// upsertSQL returns the dialect-specific insert-or-update statement.
func (e *Exporter) upsertSQL() string {
	if e.Driver == "mysql" {
		return `INSERT INTO order_export
			(order_id, order_number, customer_name, total, status, placed_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
			total = VALUES(total), status = VALUES(status)`
	}
	return `INSERT INTO order_export
		(order_id, order_number, customer_name, total, status, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (order_id) DO UPDATE SET
		total = EXCLUDED.total, status = EXCLUDED.status`
}
