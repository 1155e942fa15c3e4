package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeromicro/go-zero/core/logx"

	_ "github.com/mattn/go-sqlite3"
)

const dbDriver = "sqlite3"

// Open 打开 SQLite 数据库并在需要时创建表
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("could not create database directory: %w", err)
		}
	}

	conn, err := sql.Open(dbDriver, path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite 只允许一个写者
	conn.SetMaxOpenConns(1)

	if err := createTables(conn); err != nil {
		conn.Close()
		return nil, err
	}

	logx.Infow("database connection initialized", logx.Field("path", path))
	return conn, nil
}
