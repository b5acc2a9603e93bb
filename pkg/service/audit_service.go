package service

import (
	"context"
	"time"

	"teksttv-audit/pkg/model"
	"teksttv-audit/pkg/store"
	"teksttv-audit/pkg/worddiff"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PostSource 提供待审计的文章
type PostSource interface {
	ListPeriods(ctx context.Context) ([]model.Period, error)
	ListPosts(ctx context.Context, period model.Period) ([]model.FeedPost, error)
}

// SnapshotStore 保存审计结果
type SnapshotStore interface {
	EnsureSchema(ctx context.Context) error
	ReplacePeriod(ctx context.Context, period string, records []model.AuditRecord) error
	ListPeriod(ctx context.Context, period string) ([]model.AuditRecord, error)
	CountByPeriod(ctx context.Context) ([]model.PeriodCount, error)
}

// Count 某类判定的文章数
type Count struct {
	Classification worddiff.Classification `json:"classification"`
	Total          int                     `json:"total"`
}

// Report 一个月份的审计结果
type Report struct {
	RunID  string              `json:"run_id"`
	Period model.Period        `json:"period"`
	Pager  model.Pager         `json:"pager"`
	Counts []Count             `json:"counts"` // 顺序固定为 worddiff.Classifications
	Items  []model.AuditRecord `json:"items"`  // 与文章顺序一致，按发布时间倒序
}

// Total 返回某类判定的文章数
func (r *Report) Total(c worddiff.Classification) int {
	for _, count := range r.Counts {
		if count.Classification == c {
			return count.Total
		}
	}
	return 0
}

type AuditService struct {
	posts     PostSource
	snapshots SnapshotStore
	processor *ContentProcessor
	workers   int
}

// NewAuditService snapshots 可为 nil，此时不支持持久化
func NewAuditService(posts PostSource, snapshots SnapshotStore, workers int) *AuditService {
	if workers <= 0 {
		workers = 1
	}
	return &AuditService{
		posts:     posts,
		snapshots: snapshots,
		processor: NewContentProcessor(),
		workers:   workers,
	}
}

// Periods 返回可审计的月份，按时间倒序
func (s *AuditService) Periods(ctx context.Context) ([]model.Period, error) {
	return s.posts.ListPeriods(ctx)
}

// Audit 审计指定月份，period 为零值时审计最近一个有文章的月份
func (s *AuditService) Audit(ctx context.Context, period model.Period) (*Report, error) {
	periods, err := s.posts.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}
	if period.IsZero() {
		if len(periods) == 0 {
			return nil, store.ErrNoPeriods
		}
		period = periods[0]
	}
	if !period.Valid() {
		return nil, errors.Errorf("无效的月份: %s", period)
	}
	return s.audit(ctx, period, periods)
}

// AuditAll 审计所有可用月份
func (s *AuditService) AuditAll(ctx context.Context) ([]*Report, error) {
	periods, err := s.posts.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, store.ErrNoPeriods
	}

	reports := make([]*Report, 0, len(periods))
	for _, period := range periods {
		report, err := s.audit(ctx, period, periods)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *AuditService) audit(ctx context.Context, period model.Period, periods []model.Period) (*Report, error) {
	startTime := time.Now()
	posts, err := s.posts.ListPosts(ctx, period)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:  uuid.NewString(),
		Period: period,
		Pager:  model.NewPager(periods, period),
		Items:  make([]model.AuditRecord, len(posts)),
	}

	// 每篇文章互不依赖，结果按下标写回
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range posts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Items[i] = s.processor.ProcessPost(&posts[i], period, report.RunID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrapf(err, "审计 %s 被中断", period)
	}

	report.Counts = tally(report.Items)
	zap.S().Infof("%s 审计完成: %d 篇, 纯人工 %d, AI 未编辑 %d, AI 已编辑 %d, 耗时 %s",
		period, len(report.Items),
		report.Total(worddiff.FullyHuman), report.Total(worddiff.AIUneditedVerbatim), report.Total(worddiff.AIEdited),
		time.Since(startTime))
	return report, nil
}

func tally(items []model.AuditRecord) []Count {
	counts := make([]Count, len(worddiff.Classifications))
	index := make(map[worddiff.Classification]int, len(worddiff.Classifications))
	for i, c := range worddiff.Classifications {
		counts[i].Classification = c
		index[c] = i
	}
	for _, item := range items {
		if i, ok := index[item.Classification]; ok {
			counts[i].Total++
		}
	}
	return counts
}

// Persist 用本次结果替换 DuckDB 中该月份的快照
func (s *AuditService) Persist(ctx context.Context, report *Report) error {
	if s.snapshots == nil {
		return errors.New("未配置快照存储")
	}
	if err := s.snapshots.EnsureSchema(ctx); err != nil {
		return errors.Wrap(err, "创建快照表失败")
	}
	if err := s.snapshots.ReplacePeriod(ctx, report.Period.String(), report.Items); err != nil {
		return err
	}
	zap.S().Infof("%s 快照已保存: %d 条", report.Period, len(report.Items))
	return nil
}

// Restore 从已保存的快照重建某月份的报表，分页只在已保存的月份之间跳转
func (s *AuditService) Restore(ctx context.Context, period model.Period) (*Report, error) {
	counts, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.snapshots.ListPeriod(ctx, period.String())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.Errorf("%s 没有保存的审计结果", period)
	}

	var periods []model.Period
	seen := make(map[string]bool)
	for _, c := range counts {
		if seen[c.Period] {
			continue
		}
		seen[c.Period] = true
		if p, err := model.ParsePeriod(c.Period); err == nil {
			periods = append(periods, p)
		}
	}

	return &Report{
		RunID:  records[0].RunID,
		Period: period,
		Pager:  model.NewPager(periods, period),
		Counts: tally(records),
		Items:  records,
	}, nil
}

// History 返回已保存快照的按月汇总
func (s *AuditService) History(ctx context.Context) ([]model.PeriodCount, error) {
	if s.snapshots == nil {
		return nil, errors.New("未配置快照存储")
	}
	if err := s.snapshots.EnsureSchema(ctx); err != nil {
		return nil, errors.Wrap(err, "创建快照表失败")
	}
	return s.snapshots.CountByPeriod(ctx)
}
