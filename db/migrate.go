package db

import (
	"database/sql"
	"fmt"
)

// createTables 如果数据库中不存在必要的表，则创建它们
func createTables(conn *sql.DB) error {
	// 已完成的投稿
	createSubmissionsTableSQL := `
	CREATE TABLE IF NOT EXISTS submissions (
		id INTEGER PRIMARY KEY,
		submitter_id TEXT NOT NULL,
		submitter_chat_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		username TEXT NOT NULL DEFAULT '',
		prompt TEXT NOT NULL DEFAULT '',
		hardest TEXT NOT NULL DEFAULT '',
		review TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);`

	// 投稿附件，position 为投递顺序
	createMediaTableSQL := `
	CREATE TABLE IF NOT EXISTS submission_media (
		submission_id INTEGER NOT NULL REFERENCES submissions(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		category TEXT NOT NULL,
		media_ref TEXT NOT NULL,
		PRIMARY KEY (submission_id, position)
	);`

	// 审核决定日志
	createDecisionsTableSQL := `
	CREATE TABLE IF NOT EXISTS review_decisions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		submission_id INTEGER NOT NULL,
		submitter_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		reviewer_id TEXT NOT NULL,
		correlation_id TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);`

	// 用于顺序 ID 生成的 'id_counter' 表
	createIDCounterTableSQL := `
	CREATE TABLE IF NOT EXISTS id_counter (
		counter_name TEXT PRIMARY KEY,
		current_value INTEGER NOT NULL DEFAULT 0
	);`

	for name, stmt := range map[string]string{
		"submissions":      createSubmissionsTableSQL,
		"submission_media": createMediaTableSQL,
		"review_decisions": createDecisionsTableSQL,
		"id_counter":       createIDCounterTableSQL,
	} {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create %s table: %w", name, err)
		}
	}

	if _, err := conn.Exec("INSERT OR IGNORE INTO id_counter(counter_name, current_value) VALUES(?, 0)", submissionCounter); err != nil {
		return fmt.Errorf("failed to initialize submission counter: %w", err)
	}
	return nil
}
