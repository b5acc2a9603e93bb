package config

import (
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

type LogConfig struct {
	Level       string `json:"level" yaml:"level"`             // debug/info/warn/error
	Encoding    string `json:"encoding" yaml:"encoding"`       // console 或 json
	Development bool   `json:"development" yaml:"development"` // 开发模式输出调用栈
}

func (l *LogConfig) Validate() []error {
	var errs = make([]error, 0)
	if _, err := zapcore.ParseLevel(l.Level); err != nil {
		errs = append(errs, errors.Errorf("日志级别无效: %s", l.Level))
	}
	if l.Encoding != "console" && l.Encoding != "json" {
		errs = append(errs, errors.Errorf("日志格式无效: %s", l.Encoding))
	}
	return errs
}

func NewDefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:    "info",
		Encoding: "console",
	}
}
