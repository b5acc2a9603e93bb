package service

import (
	"time"

	"teksttv-audit/pkg/model"
	"teksttv-audit/pkg/worddiff"

	"github.com/google/uuid"
)

type ContentProcessor struct {
	now func() time.Time
}

func NewContentProcessor() *ContentProcessor {
	return &ContentProcessor{now: time.Now}
}

// ProcessPost 判定单篇文章的撰写来源，AI 草稿被编辑过时附带词级对比
// 缺失的内容字段按空字符串处理，不会失败
func (p *ContentProcessor) ProcessPost(post *model.FeedPost, period model.Period, runID string) model.AuditRecord {
	assessment := worddiff.Assess(post.AIText(), post.HumanText())

	record := model.AuditRecord{
		ID:             uuid.NewString(),
		RunID:          runID,
		PostID:         post.ID,
		Period:         period.String(),
		Title:          post.Title,
		PostDate:       post.PostDate,
		Author:         post.Author(),
		LastEditor:     post.Editor(),
		Classification: assessment.Classification,
		AIText:         assessment.AIText,
		HumanText:      assessment.HumanText,
		AuditedAt:      p.now(),
	}
	if assessment.Diff != nil {
		record.Before = assessment.Diff.Before
		record.After = assessment.Diff.After
	}
	return record
}
