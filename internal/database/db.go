package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema lists every table the service needs.  Statements are
// idempotent so startup runs them unconditionally.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'ADMIN',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_hash (token_hash),
		KEY ix_refresh_user (user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(64) NOT NULL,
		start_bench INT NOT NULL,
		end_bench INT NOT NULL,
		position INT NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_rooms_name (name)
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		class_no VARCHAR(32) NOT NULL,
		student_name VARCHAR(255) NOT NULL,
		position INT NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_students_class_no (class_no)
	)`,
	`CREATE TABLE IF NOT EXISTS student_subjects (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		class_no VARCHAR(32) NOT NULL,
		day_label VARCHAR(32) NOT NULL,
		subject VARCHAR(255) NOT NULL,
		PRIMARY KEY (id),
		KEY ix_subjects_class_day (class_no, day_label)
	)`,
	`CREATE TABLE IF NOT EXISTS roster_days (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		day_label VARCHAR(32) NOT NULL,
		position INT NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_roster_days_label (day_label)
	)`,
	`CREATE TABLE IF NOT EXISTS qp_map (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		subject VARCHAR(255) NOT NULL,
		qp_code VARCHAR(64) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_qp_map_subject (subject)
	)`,
	`CREATE TABLE IF NOT EXISTS qp_docs (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		code VARCHAR(64) NOT NULL,
		pages INT NOT NULL,
		data LONGBLOB NOT NULL,
		uploaded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_qp_docs_code (code)
	)`,
	`CREATE TABLE IF NOT EXISTS runs (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		day VARCHAR(32) NOT NULL,
		payload LONGTEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	)`,
	`CREATE TABLE IF NOT EXISTS run_bundles (
		run_id BIGINT UNSIGNED NOT NULL,
		room VARCHAR(64) NOT NULL,
		pages INT NOT NULL,
		pdf LONGBLOB NOT NULL,
		PRIMARY KEY (run_id, room)
	)`,
}

// EnsureSchema creates any missing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
