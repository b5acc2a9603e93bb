package config

import (
	"github.com/pkg/errors"
)

// AuditConfig 审计相关的 ACF 字段名与运行参数
type AuditConfig struct {
	FeedFlagKey  string `json:"feedFlagKey" yaml:"feedFlagKey"`   // 是否上 Tekst TV
	AIContentKey string `json:"aiContentKey" yaml:"aiContentKey"` // AI 草稿
	ContentKey   string `json:"contentKey" yaml:"contentKey"`     // 人工定稿
	EditLastKey  string `json:"editLastKey" yaml:"editLastKey"`   // 最后编辑人
	Workers      int    `json:"workers" yaml:"workers"`           // 并发处理的文章数
	OutDir       string `json:"outDir" yaml:"outDir"`             // 报表输出目录
}

func (a *AuditConfig) Validate() []error {
	var errs = make([]error, 0)
	if a.FeedFlagKey == "" || a.AIContentKey == "" || a.ContentKey == "" {
		errs = append(errs, errors.Errorf("审计字段名不能为空"))
	}
	if a.Workers <= 0 {
		errs = append(errs, errors.Errorf("workers 必须大于 0，当前为 %d", a.Workers))
	}
	if a.OutDir == "" {
		errs = append(errs, errors.Errorf("报表输出目录不能为空"))
	}
	return errs
}

func NewDefaultAuditConfig() *AuditConfig {
	return &AuditConfig{
		FeedFlagKey:  "post_in_kabelkrant",
		AIContentKey: "post_kabelkrant_content_gpt",
		ContentKey:   "post_kabelkrant_content",
		EditLastKey:  "_edit_last",
		Workers:      4,
		OutDir:       "./reports",
	}
}
