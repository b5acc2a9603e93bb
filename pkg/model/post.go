package model

import (
	"database/sql"
	"time"
)

// UnknownEditor 找不到最后编辑人时的展示名
const UnknownEditor = "Unknown"

// FeedPost 一篇上 Tekst TV 的已发布文章及其两份文本
type FeedPost struct {
	ID             uint64         `gorm:"column:post_id" json:"id"`
	Title          string         `gorm:"column:title" json:"title"`
	PostDate       time.Time      `gorm:"column:post_date" json:"post_date"`
	AuthorName     sql.NullString `gorm:"column:author_name" json:"-"`
	EditLast       sql.NullString `gorm:"column:edit_last" json:"-"`     // _edit_last 原始值，为用户 ID 字符串
	AIContent      sql.NullString `gorm:"column:ai_content" json:"-"`    // AI 草稿
	HumanContent   sql.NullString `gorm:"column:human_content" json:"-"` // 人工定稿
	LastEditorName string         `gorm:"-" json:"last_editor_name"`
}

// AIText 缺失的字段按空字符串处理
func (p *FeedPost) AIText() string {
	return p.AIContent.String
}

func (p *FeedPost) HumanText() string {
	return p.HumanContent.String
}

func (p *FeedPost) Author() string {
	return p.AuthorName.String
}

// Editor 返回最后编辑人，未知时返回 UnknownEditor
func (p *FeedPost) Editor() string {
	if p.LastEditorName == "" {
		return UnknownEditor
	}
	return p.LastEditorName
}

// User wp_users 中审计用到的字段
type User struct {
	ID          uint64 `gorm:"column:ID;primaryKey"`
	DisplayName string `gorm:"column:display_name"`
}
