package cmd

import (
	"errors"
	"fmt"

	"teksttv-audit/config"
	"teksttv-audit/pkg/db"
	"teksttv-audit/pkg/logger"
	"teksttv-audit/pkg/service"
	"teksttv-audit/pkg/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = "./etc/config.yaml"

func addConfigFlag(cmd *cobra.Command, configFilePath *string) {
	cmd.Flags().StringVarP(configFilePath, "config", "c", defaultConfigPath, "配置文件路径")
}

// loadConfig 读取并校验配置，随后初始化全局日志，返回的函数用于刷新日志
func loadConfig(configFilePath string) (*config.GlobalConfig, func(), error) {
	cfg, err := config.TryLoadFromDisk(configFilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("读取本地配置文件错误: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("本地配置文件验证错误: %w", errors.Join(errs...))
	}
	if cfg.AuditConfig == nil {
		cfg.AuditConfig = config.NewDefaultAuditConfig()
	}

	restore, err := logger.Init(cfg.LogConfig)
	if err != nil {
		return nil, nil, err
	}
	return cfg, restore, nil
}

// openPostStore 连接 WordPress 内容库
func openPostStore(cfg *config.GlobalConfig) (*store.PostStore, error) {
	if cfg.WordPressConfig == nil {
		return nil, errors.New("WordPress 配置未设置")
	}
	if err := db.InitWordPress(cfg.WordPressConfig); err != nil {
		return nil, fmt.Errorf("WordPress 数据库连接错误: %w", err)
	}
	return store.NewPostStore(db.GetWordPress(), cfg.WordPressConfig, cfg.AuditConfig), nil
}

// openSnapshots 连接 DuckDB 快照库
func openSnapshots(cfg *config.GlobalConfig) (*store.SnapshotRepository, error) {
	if cfg.DuckDBConfig == nil {
		return nil, errors.New("DuckDB 配置未设置")
	}
	if err := db.InitDuckDB(cfg.DuckDBConfig); err != nil {
		return nil, fmt.Errorf("DuckDB 连接错误: %w", err)
	}
	return store.NewSnapshotRepository(db.GetDuckDB()), nil
}

// closeDatabases 关闭已打开的连接
func closeDatabases() {
	if err := db.CloseWordPress(); err != nil {
		zap.S().Warnf("关闭 WordPress 连接失败: %s", err.Error())
	}
	if err := db.CloseDuckDB(); err != nil {
		zap.S().Warnf("关闭 DuckDB 连接失败: %s", err.Error())
	}
}

// newAuditService withSnapshots 为 false 时不连接 DuckDB
func newAuditService(cfg *config.GlobalConfig, withSnapshots bool) (*service.AuditService, error) {
	posts, err := openPostStore(cfg)
	if err != nil {
		return nil, err
	}
	if !withSnapshots {
		return service.NewAuditService(posts, nil, cfg.AuditConfig.Workers), nil
	}
	snapshots, err := openSnapshots(cfg)
	if err != nil {
		return nil, err
	}
	return service.NewAuditService(posts, snapshots, cfg.AuditConfig.Workers), nil
}
