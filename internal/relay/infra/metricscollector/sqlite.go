package metricscollector

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/core"
)

type MetricsCollector struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewMetricsCollector creates a new metrics collector with SQLite
func NewMetricsCollector(dbPath string, logger *slog.Logger) (*MetricsCollector, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open metrics database: %w", err)
	}

	collector := &MetricsCollector{
		db:     db,
		logger: logger,
	}

	if err := collector.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metrics schema: %w", err)
	}

	logger.InfoContext(context.Background(), "Metrics collector initialized",
		"db_path", dbPath,
	)

	return collector, nil
}

// Close closes the database connection
func (mc *MetricsCollector) Close() error {
	return mc.db.Close()
}

// RecordDelivery records the outcome of one forwarding attempt
func (mc *MetricsCollector) RecordDelivery(ctx context.Context, metrics core.DeliveryMetrics) error {
	mc.logger.DebugContext(ctx, "Recording delivery metrics",
		"request_id", metrics.RequestID,
		"outcome", metrics.Outcome,
		"duration_ms", metrics.Duration.Milliseconds(),
	)

	query := `
		INSERT INTO delivery_metrics (
			request_id, outcome, upstream_status, duration_ms, timestamp
		) VALUES (?, ?, ?, ?, ?)
	`

	_, err := mc.db.ExecContext(ctx, query,
		metrics.RequestID,
		string(metrics.Outcome),
		metrics.UpstreamStatus,
		metrics.Duration.Milliseconds(),
		metrics.Timestamp,
	)
	if err != nil {
		mc.logger.ErrorContext(ctx, "Failed to record delivery metrics",
			"request_id", metrics.RequestID,
			"error", err.Error(),
		)
		return fmt.Errorf("failed to record delivery metrics: %w", err)
	}

	return nil
}

// initSchema initializes the database schema
func (mc *MetricsCollector) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS delivery_metrics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		request_id TEXT NOT NULL,
		outcome TEXT NOT NULL,
		upstream_status INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL,
		timestamp DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_delivery_outcome ON delivery_metrics(outcome);
	CREATE INDEX IF NOT EXISTS idx_delivery_timestamp ON delivery_metrics(timestamp);
	`

	_, err := mc.db.Exec(schema)
	return err
}
