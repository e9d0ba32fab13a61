package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"homefinder-listings/internal/utils"
	"homefinder-listings/pkg/logger"

	"github.com/go-sql-driver/mysql"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		description TEXT NOT NULL,
		address VARCHAR(200) NOT NULL,
		city VARCHAR(100) NOT NULL,
		state VARCHAR(100) NOT NULL,
		zip CHAR(6) NOT NULL,
		price DOUBLE NOT NULL,
		bedrooms INT NOT NULL DEFAULT 0,
		bathrooms INT NOT NULL DEFAULT 0,
		square_footage INT NOT NULL DEFAULT 0,
		property_type VARCHAR(50) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'Available',
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		video_link VARCHAR(500) NULL,
		images JSON NOT NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		INDEX idx_properties_city (city),
		INDEX idx_properties_type (property_type),
		INDEX idx_properties_price (price)
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(20) NULL,
		message TEXT NOT NULL,
		property_id BIGINT NULL,
		property_title VARCHAR(200) NULL,
		created_at DATETIME(6) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'New',
		INDEX idx_contacts_property (property_id)
	)`,
}

// OpenMySQL parses dsn, forces parseTime so DATETIME columns scan into
// time.Time, and verifies the connection.
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid MySQL DSN: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create MySQL connector: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	start := time.Now()
	err = db.PingContext(ctx)
	utils.RecordDBOperationDuration("mysql", "ping", "", start)
	if err != nil {
		utils.RecordDBError("mysql", "ping", "")
		db.Close()
		logger.GlobalLogger.Errorf("failed to connect to MySQL: %v", err)
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	logger.GlobalLogger.Println("MySQL connected successfully.")
	return db, nil
}

// MigrateMySQL creates the listing and contact tables when missing.
func MigrateMySQL(ctx context.Context, db *sql.DB) error {
	for _, stmt := range mysqlSchema {
		start := time.Now()
		_, err := db.ExecContext(ctx, stmt)
		utils.RecordDBOperationDuration("mysql", "migrate", "", start)
		if err != nil {
			utils.RecordDBError("mysql", "migrate", "")
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// CloseMySQL closes the pool and logs the outcome.
func CloseMySQL(db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.GlobalLogger.Errorf("Error closing MySQL: %v", err)
	} else {
		logger.GlobalLogger.Println("MySQL connection closed")
	}
}
