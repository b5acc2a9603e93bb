package db

import (
	"database/sql"
	"sync"

	"teksttv-audit/config"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var duckDB *sql.DB
var duckDBOnce sync.Once
var duckDBErr error

// InitDuckDB 初始化审计快照库连接
func InitDuckDB(cfg *config.DuckDBConfig) error {
	duckDBOnce.Do(func() {
		conn, err := sql.Open("duckdb", cfg.DSN())
		if err != nil {
			duckDBErr = errors.Wrap(err, "连接 duckdb 失败")
			return
		}

		// 测试连接
		if err = conn.Ping(); err != nil {
			_ = conn.Close()
			duckDBErr = errors.Wrap(err, "duckdb 连接测试失败")
			return
		}

		duckDB = conn
		zap.S().Debugf("duckdb 初始化完成: %s", cfg.DBPath)
	})
	return duckDBErr
}

// GetDuckDB 获取 DuckDB 连接
func GetDuckDB() *sql.DB {
	return duckDB
}

// CloseDuckDB 关闭 DuckDB 连接
func CloseDuckDB() error {
	if duckDB == nil {
		return nil
	}
	return duckDB.Close()
}
