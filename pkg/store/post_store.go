package store

import (
	"context"
	"fmt"

	"teksttv-audit/config"
	"teksttv-audit/pkg/model"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoPeriods 没有任何带 AI 草稿的 Tekst TV 文章
var ErrNoPeriods = errors.New("没有找到符合条件的文章")

// PostStore 从 WordPress 读取 Tekst TV 文章
type PostStore struct {
	db    *gorm.DB
	wp    *config.WordPressConfig
	audit *config.AuditConfig
}

func NewPostStore(db *gorm.DB, wp *config.WordPressConfig, audit *config.AuditConfig) *PostStore {
	return &PostStore{db: db, wp: wp, audit: audit}
}

// ListPeriods 返回有已发布且带 AI 草稿的 Tekst TV 文章的月份，按时间倒序
func (s *PostStore) ListPeriods(ctx context.Context) ([]model.Period, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT YEAR(p.post_date) AS year, MONTH(p.post_date) AS month
		FROM %s p
		INNER JOIN %s pm1 ON p.ID = pm1.post_id
		INNER JOIN %s pm2 ON p.ID = pm2.post_id
		WHERE pm1.meta_key = ?
		  AND pm1.meta_value = '1'
		  AND pm2.meta_key = ?
		  AND pm2.meta_value != ''
		  AND p.post_status = 'publish'
		ORDER BY year DESC, month DESC`,
		s.wp.Table("posts"), s.wp.Table("postmeta"), s.wp.Table("postmeta"))

	var periods []model.Period
	if err := s.db.WithContext(ctx).Raw(query, s.audit.FeedFlagKey, s.audit.AIContentKey).Scan(&periods).Error; err != nil {
		return nil, errors.Wrap(err, "查询月份列表失败")
	}
	return periods, nil
}

// MostRecentPeriod 返回最近一个有文章的月份
func (s *PostStore) MostRecentPeriod(ctx context.Context) (model.Period, error) {
	periods, err := s.ListPeriods(ctx)
	if err != nil {
		return model.Period{}, err
	}
	if len(periods) == 0 {
		return model.Period{}, ErrNoPeriods
	}
	return periods[0], nil
}

// ListPosts 返回指定月份已发布的 Tekst TV 文章，要求两个内容字段都存在，按发布时间倒序
func (s *PostStore) ListPosts(ctx context.Context, period model.Period) ([]model.FeedPost, error) {
	posts := s.wp.Table("posts")
	meta := s.wp.Table("postmeta")
	users := s.wp.Table("users")
	query := fmt.Sprintf(`
		SELECT p.ID AS post_id, p.post_title AS title, p.post_date AS post_date,
		       u.display_name AS author_name, el.meta_value AS edit_last,
		       ai.meta_value AS ai_content, hu.meta_value AS human_content
		FROM %s p
		INNER JOIN %s flag ON flag.post_id = p.ID AND flag.meta_key = ? AND flag.meta_value = '1'
		INNER JOIN %s ai ON ai.post_id = p.ID AND ai.meta_key = ?
		INNER JOIN %s hu ON hu.post_id = p.ID AND hu.meta_key = ?
		LEFT JOIN %s el ON el.post_id = p.ID AND el.meta_key = ?
		LEFT JOIN %s u ON u.ID = p.post_author
		WHERE p.post_status = 'publish'
		  AND p.post_date >= ? AND p.post_date < ?
		ORDER BY p.post_date DESC`,
		posts, meta, meta, meta, meta, users)

	var rows []model.FeedPost
	err := s.db.WithContext(ctx).Raw(query,
		s.audit.FeedFlagKey, s.audit.AIContentKey, s.audit.ContentKey, s.audit.EditLastKey,
		period.Start(), period.End(),
	).Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrapf(err, "查询 %s 的文章失败", period)
	}

	rows = dedupe(rows)
	if err := s.fillEditors(ctx, rows); err != nil {
		return nil, err
	}
	zap.S().Debugf("%s 共 %d 篇文章", period, len(rows))
	return rows, nil
}

// fillEditors 按 _edit_last 中的用户 ID 补全最后编辑人
func (s *PostStore) fillEditors(ctx context.Context, rows []model.FeedPost) error {
	ids := make([]uint64, 0, len(rows))
	seen := make(map[uint64]struct{}, len(rows))
	for i := range rows {
		id, ok := editorID(&rows[i])
		if !ok {
			continue
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var users []model.User
	err := s.db.WithContext(ctx).
		Table(s.wp.Table("users")).
		Select("ID, display_name").
		Where("ID IN ?", ids).
		Find(&users).Error
	if err != nil {
		return errors.Wrap(err, "查询最后编辑人失败")
	}

	names := make(map[uint64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}
	for i := range rows {
		if id, ok := editorID(&rows[i]); ok {
			rows[i].LastEditorName = names[id]
		}
	}
	return nil
}

// editorID meta_value 是字符串，非法值视为未知
func editorID(p *model.FeedPost) (uint64, bool) {
	if !p.EditLast.Valid {
		return 0, false
	}
	id, err := cast.ToUint64E(p.EditLast.String)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// dedupe 同一个 meta_key 可能存在多行，只保留每篇文章的第一行
func dedupe(rows []model.FeedPost) []model.FeedPost {
	seen := make(map[uint64]struct{}, len(rows))
	out := rows[:0]
	for _, r := range rows {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
