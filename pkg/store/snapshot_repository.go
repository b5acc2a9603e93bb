package store

import (
	"context"
	"database/sql"
	"time"

	"teksttv-audit/pkg/model"
	"teksttv-audit/pkg/worddiff"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SnapshotRepository 在 DuckDB 中保存每个月份最近一次的审计结果
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// EnsureSchema 创建审计结果表
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return errors.New("DuckDB 连接未初始化")
	}

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS audit_item (
			id TEXT PRIMARY KEY,
			run_id TEXT,
			post_id UBIGINT,
			period TEXT,
			title TEXT,
			post_date TIMESTAMP,
			author TEXT,
			last_editor TEXT,
			classification TEXT,
			ai_text TEXT,
			human_text TEXT,
			before_spans TEXT,
			after_spans TEXT,
			audited_at TIMESTAMP
		)
	`
	if _, err := r.db.ExecContext(ctx, createTableSQL); err != nil {
		return errors.Wrap(err, "创建表失败")
	}

	zap.S().Debug("DuckDB 表创建成功")
	return nil
}

// ReplacePeriod 在一个事务中替换某月份的全部审计结果
func (r *SnapshotRepository) ReplacePeriod(ctx context.Context, period string, records []model.AuditRecord) (err error) {
	if r.db == nil {
		return errors.New("DuckDB 连接未初始化")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "开启事务失败")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM audit_item WHERE period = ?", period); err != nil {
		return errors.Wrapf(err, "删除 %s 的旧快照失败", period)
	}

	insertSQL := `
		INSERT INTO audit_item (id, run_id, post_id, period, title, post_date, author, last_editor,
			classification, ai_text, human_text, before_spans, after_spans, audited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i := range records {
		rec := &records[i]
		_, err = tx.ExecContext(ctx, insertSQL,
			rec.ID,
			rec.RunID,
			rec.PostID,
			rec.Period,
			rec.Title,
			rec.PostDate,
			rec.Author,
			rec.LastEditor,
			string(rec.Classification),
			rec.AIText,
			rec.HumanText,
			rec.Before,
			rec.After,
			rec.AuditedAt,
		)
		if err != nil {
			return errors.Wrapf(err, "插入文章 %d 失败", rec.PostID)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "提交事务失败")
	}
	return nil
}

// ListPeriod 读取某月份的审计结果
func (r *SnapshotRepository) ListPeriod(ctx context.Context, period string) ([]model.AuditRecord, error) {
	if r.db == nil {
		return nil, errors.New("DuckDB 连接未初始化")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, run_id, post_id, period, title, post_date, author, last_editor,
			classification, ai_text, human_text, before_spans, after_spans, audited_at
		FROM audit_item
		WHERE period = ?
		ORDER BY post_date DESC`, period)
	if err != nil {
		return nil, errors.Wrap(err, "查询快照失败")
	}
	defer rows.Close()

	var records []model.AuditRecord
	for rows.Next() {
		var rec model.AuditRecord
		var classification string
		var author, lastEditor sql.NullString
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.PostID, &rec.Period, &rec.Title, &rec.PostDate,
			&author, &lastEditor, &classification, &rec.AIText, &rec.HumanText,
			&rec.Before, &rec.After, &rec.AuditedAt); err != nil {
			return nil, errors.Wrap(err, "扫描快照记录失败")
		}
		// TIMESTAMP 不带时区，驱动按 UTC 返回，还原为写入时的本地时间
		rec.PostDate = rec.PostDate.In(time.Local)
		rec.AuditedAt = rec.AuditedAt.In(time.Local)
		rec.Author = author.String
		rec.LastEditor = lastEditor.String
		rec.Classification = worddiff.Classification(classification)
		records = append(records, rec)
	}
	return records, errors.Wrap(rows.Err(), "遍历快照记录失败")
}

// CountByPeriod 按月份与判定汇总文章数
func (r *SnapshotRepository) CountByPeriod(ctx context.Context) ([]model.PeriodCount, error) {
	if r.db == nil {
		return nil, errors.New("DuckDB 连接未初始化")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT period, classification, COUNT(*) AS total
		FROM audit_item
		GROUP BY period, classification
		ORDER BY period DESC, classification`)
	if err != nil {
		return nil, errors.Wrap(err, "查询汇总失败")
	}
	defer rows.Close()

	var counts []model.PeriodCount
	for rows.Next() {
		var c model.PeriodCount
		var classification string
		if err := rows.Scan(&c.Period, &classification, &c.Total); err != nil {
			return nil, errors.Wrap(err, "扫描汇总记录失败")
		}
		c.Classification = worddiff.Classification(classification)
		counts = append(counts, c)
	}
	return counts, errors.Wrap(rows.Err(), "遍历汇总记录失败")
}

// Count 获取已保存的审计记录数量
func (r *SnapshotRepository) Count(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, errors.New("DuckDB 连接未初始化")
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_item").Scan(&count); err != nil {
		return 0, errors.Wrap(err, "查询数量失败")
	}
	return count, nil
}
