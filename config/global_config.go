package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type IConfig interface {
	Validate() []error
}

type GlobalConfig struct {
	LogConfig       *LogConfig       `json:"log" yaml:"log"`
	WordPressConfig *WordPressConfig `json:"wordpress" yaml:"wordpress"`
	DuckDBConfig    *DuckDBConfig    `json:"duckdb" yaml:"duckdb"`
	AuditConfig     *AuditConfig     `json:"audit" yaml:"audit"`
}

func (g *GlobalConfig) Validate() []error {
	var errs = make([]error, 0)
	for _, c := range g.sections() {
		if es := c.Validate(); len(es) > 0 {
			errs = append(errs, es...)
		}
	}
	return errs
}

func (g *GlobalConfig) sections() []IConfig {
	sections := make([]IConfig, 0, 4)
	if g.LogConfig != nil {
		sections = append(sections, g.LogConfig)
	}
	if g.WordPressConfig != nil {
		sections = append(sections, g.WordPressConfig)
	}
	if g.DuckDBConfig != nil {
		sections = append(sections, g.DuckDBConfig)
	}
	if g.AuditConfig != nil {
		sections = append(sections, g.AuditConfig)
	}
	return sections
}

func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:       NewDefaultLogConfig(),
		WordPressConfig: NewDefaultWordPressConfig(),
		DuckDBConfig:    NewDefaultDuckDBConfig(),
		AuditConfig:     NewDefaultAuditConfig(),
	}
}

func TryLoadFromDisk(configFilePath string) (*GlobalConfig, error) {
	_, err := os.Stat(configFilePath)
	if err != nil {
		return nil, err
	}
	dir, file := filepath.Split(configFilePath)
	fileType := filepath.Ext(file)
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(strings.TrimSuffix(file, fileType))
	v.SetConfigType(strings.TrimPrefix(fileType, "."))
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
		return nil, errors.Errorf("解析配置文件错误:%s", err.Error())
	}
	cfg := NewDefaultGlobalConfig()
	if err := v.Unmarshal(cfg, func(config *mapstructure.DecoderConfig) {
		config.TagName = strings.TrimPrefix(fileType, ".")
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}
