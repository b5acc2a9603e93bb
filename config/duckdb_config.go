package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// InMemoryDuckDB 不落盘的快照库，进程退出即丢失
const InMemoryDuckDB = ":memory:"

// DuckDBConfig 审计快照库配置
type DuckDBConfig struct {
	DBPath  string `json:"dbPath" yaml:"dbPath"`   // 快照库文件路径，:memory: 表示内存库
	Threads int    `json:"threads" yaml:"threads"` // DuckDB 工作线程数，0 使用默认值
}

// Validate 路径不能为空，文件库会预先创建所在目录
func (d *DuckDBConfig) Validate() []error {
	var errs = make([]error, 0)
	if d.Threads < 0 {
		errs = append(errs, errors.Errorf("DuckDB threads 不能为负数，当前为 %d", d.Threads))
	}
	if d.DBPath == "" {
		errs = append(errs, errors.Errorf("DuckDB 数据库路径不能为空"))
		return errs
	}
	if d.InMemory() {
		return errs
	}

	if err := os.MkdirAll(filepath.Dir(d.DBPath), 0755); err != nil {
		errs = append(errs, errors.Wrapf(err, "创建快照库目录失败: %s", d.DBPath))
	}
	return errs
}

func (d *DuckDBConfig) InMemory() bool {
	return d.DBPath == InMemoryDuckDB
}

func NewDefaultDuckDBConfig() *DuckDBConfig {
	return &DuckDBConfig{
		DBPath: "./data/audit.duckdb",
	}
}

// DSN 内存库使用空路径，线程数以连接参数传给驱动
func (d *DuckDBConfig) DSN() string {
	path := d.DBPath
	if d.InMemory() {
		path = ""
	}
	if d.Threads > 0 {
		return fmt.Sprintf("%s?threads=%d", path, d.Threads)
	}
	return path
}
