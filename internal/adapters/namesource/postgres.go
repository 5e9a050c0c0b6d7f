package namesource

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresSource reads distinct first names from a PostgreSQL contact store.
type PostgresSource struct {
	pool   *pgxpool.Pool
	table  string
	logger *zap.Logger
}

// NewPostgresSource creates a source reading from the given table over a
// PostgreSQL connection URL.
func NewPostgresSource(ctx context.Context, url, table string, logger *zap.Logger) (*PostgresSource, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid contact table name %q", table)
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL database: %w", err)
	}

	logger.Info("Connected to PostgreSQL contact store", zap.String("table", table))

	return &PostgresSource{
		pool:   pool,
		table:  table,
		logger: logger,
	}, nil
}

// ListDistinctFirstNames returns every distinct non-empty first name in the
// contact table.
func (s *PostgresSource) ListDistinctFirstNames(ctx context.Context, excludeDeleted bool) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT DISTINCT first_name FROM %s WHERE first_name IS NOT NULL AND first_name <> ''",
		s.table,
	)
	if excludeDeleted {
		query += " AND NOT is_deleted"
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query first names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan first name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate first names: %w", err)
	}

	s.logger.Debug("Fetched first names from PostgreSQL", zap.Int("names", len(names)))

	return names, nil
}

// Close closes the underlying connection pool
func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}
