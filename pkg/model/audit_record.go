package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"teksttv-audit/pkg/worddiff"

	"github.com/pkg/errors"
)

// AuditRecord 单篇文章的审计结果，存储到 DuckDB
type AuditRecord struct {
	ID             string                  `json:"id"`     // UUID
	RunID          string                  `json:"run_id"` // 同一次审计共享
	PostID         uint64                  `json:"post_id"`
	Period         string                  `json:"period"` // YYYY-MM
	Title          string                  `json:"title"`
	PostDate       time.Time               `json:"post_date"`
	Author         string                  `json:"author"`
	LastEditor     string                  `json:"last_editor"`
	Classification worddiff.Classification `json:"classification"`
	AIText         string                  `json:"ai_text"`    // 规范化后的 AI 草稿
	HumanText      string                  `json:"human_text"` // 规范化后的人工定稿
	Before         SpanList                `json:"before"`     // 仅 AIEdited 时有值
	After          SpanList                `json:"after"`
	AuditedAt      time.Time               `json:"audited_at"`
}

// TableName 指定表名
func (AuditRecord) TableName() string {
	return "audit_item"
}

// Diff 还原对比结果，未编辑的文章返回 nil
func (r *AuditRecord) Diff() *worddiff.AlignedDiff {
	if r.Classification != worddiff.AIEdited {
		return nil
	}
	return &worddiff.AlignedDiff{Before: r.Before, After: r.After}
}

// SpanList 以 JSON 文本形式存储的词级对比结果
type SpanList []worddiff.Span

// Value 实现 driver.Valuer 接口
func (s SpanList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	bytes, err := json.Marshal([]worddiff.Span(s))
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

// Scan 实现 sql.Scanner 接口
func (s *SpanList) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.Errorf("无法解析 SpanList: %T", value)
	}
	if len(bytes) == 0 {
		*s = nil
		return nil
	}

	var spans []worddiff.Span
	if err := json.Unmarshal(bytes, &spans); err != nil {
		return errors.Wrap(err, "SpanList JSON 解析失败")
	}
	*s = spans
	return nil
}

// PeriodCount 某周期某类判定的文章数
type PeriodCount struct {
	Period         string                  `json:"period"`
	Classification worddiff.Classification `json:"classification"`
	Total          int64                   `json:"total"`
}
