package namesource

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// MySQLSource reads distinct first names from a MySQL contact store, the
// layout most CRM installations expose: a contact table with first_name and
// is_deleted columns.
type MySQLSource struct {
	db     *sql.DB
	table  string
	logger *zap.Logger
}

// NewMySQLSource creates a source reading from the given table over a MySQL
// DSN (user:password@tcp(host:port)/dbname).
func NewMySQLSource(dsn, table string, logger *zap.Logger) (*MySQLSource, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid contact table name %q", table)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
	}

	logger.Info("Connected to MySQL contact store", zap.String("table", table))

	return &MySQLSource{
		db:     db,
		table:  table,
		logger: logger,
	}, nil
}

// ListDistinctFirstNames returns every distinct non-empty first name in the
// contact table.
func (s *MySQLSource) ListDistinctFirstNames(ctx context.Context, excludeDeleted bool) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT DISTINCT first_name FROM %s WHERE first_name IS NOT NULL AND first_name <> ''",
		s.table,
	)
	if excludeDeleted {
		query += " AND is_deleted = 0"
	}

	rows, err := s.db.QueryContext(ctx, query)
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

	s.logger.Debug("Fetched first names from MySQL", zap.Int("names", len(names)))

	return names, nil
}

// Close closes the underlying database connection
func (s *MySQLSource) Close() error {
	return s.db.Close()
}
