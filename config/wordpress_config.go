package config

import (
	"fmt"
	"regexp"

	"github.com/pkg/errors"
)

var tablePrefixPattern = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// WordPressConfig WordPress 内容库（MySQL）连接配置
type WordPressConfig struct {
	Host         string   `json:"host" yaml:"host"`
	Port         int      `json:"port" yaml:"port"`
	User         string   `json:"user" yaml:"user"`
	Password     string   `json:"password" yaml:"password"`
	Database     string   `json:"database" yaml:"database"`
	TablePrefix  string   `json:"tablePrefix" yaml:"tablePrefix"`   // 默认 wp_
	Replicas     []string `json:"replicas" yaml:"replicas"`         // 只读副本 DSN，可为空
	MaxOpenConns int      `json:"maxOpenConns" yaml:"maxOpenConns"` // 连接池上限
	MaxIdleConns int      `json:"maxIdleConns" yaml:"maxIdleConns"`
}

func (w *WordPressConfig) Validate() []error {
	var errs = make([]error, 0)
	if w.Host == "" {
		errs = append(errs, errors.Errorf("WordPress 数据库地址不能为空"))
	}
	if w.Port <= 0 || w.Port > 65535 {
		errs = append(errs, errors.Errorf("WordPress 数据库端口无效: %d", w.Port))
	}
	if w.User == "" {
		errs = append(errs, errors.Errorf("WordPress 数据库用户不能为空"))
	}
	if w.Database == "" {
		errs = append(errs, errors.Errorf("WordPress 数据库名不能为空"))
	}
	// 表前缀会拼接进 SQL
	if !tablePrefixPattern.MatchString(w.TablePrefix) {
		errs = append(errs, errors.Errorf("WordPress 表前缀包含非法字符: %q", w.TablePrefix))
	}
	if w.MaxOpenConns < 0 || w.MaxIdleConns < 0 {
		errs = append(errs, errors.Errorf("连接池配置不能为负数"))
	}
	return errs
}

func NewDefaultWordPressConfig() *WordPressConfig {
	return &WordPressConfig{
		Host:         "127.0.0.1",
		Port:         3306,
		User:         "wordpress",
		Database:     "wordpress",
		TablePrefix:  "wp_",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
	}
}

func (w *WordPressConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		w.User, w.Password, w.Host, w.Port, w.Database)
}

// Table 返回带前缀的表名
func (w *WordPressConfig) Table(name string) string {
	return w.TablePrefix + name
}
