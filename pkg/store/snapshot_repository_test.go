package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teksttv-audit/pkg/model"
	"teksttv-audit/pkg/store"
	"teksttv-audit/pkg/worddiff"
)

func newSnapshotRepository(t *testing.T) (*store.SnapshotRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return store.NewSnapshotRepository(mockDB), mock
}

func TestSnapshotRepository_EnsureSchema(t *testing.T) {
	repo, mock := newSnapshotRepository(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS audit_item`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_ReplacePeriod(t *testing.T) {
	repo, mock := newSnapshotRepository(t)
	now := time.Now()

	records := []model.AuditRecord{
		{
			ID: "a", RunID: "run", PostID: 12, Period: "2024-05", Title: "Brand",
			Classification: worddiff.AIEdited,
			AIText:         "er is brand", HumanText: "er is grote brand",
			Before:    model.SpanList{{Kind: worddiff.Unchanged, Token: "er"}},
			After:     model.SpanList{{Kind: worddiff.Inserted, Token: "grote"}},
			AuditedAt: now,
		},
		{
			ID: "b", RunID: "run", PostID: 11, Period: "2024-05", Title: "Weer",
			Classification: worddiff.FullyHuman, HumanText: "zonnig", AuditedAt: now,
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM audit_item WHERE period = \?`).
		WithArgs("2024-05").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`INSERT INTO audit_item`).
		WithArgs("a", "run", 12, "2024-05", "Brand", sqlmock.AnyArg(), "", "",
			"ai_written_edited", "er is brand", "er is grote brand",
			`[{"kind":0,"token":"er"}]`, `[{"kind":2,"token":"grote"}]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO audit_item`).
		WithArgs("b", "run", 11, "2024-05", "Weer", sqlmock.AnyArg(), "", "",
			"fully_human_written", "", "zonnig", nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplacePeriod(context.Background(), "2024-05", records))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_ReplacePeriod_RollbackOnError(t *testing.T) {
	repo, mock := newSnapshotRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM audit_item`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO audit_item`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.ReplacePeriod(context.Background(), "2024-05", []model.AuditRecord{{ID: "a", PostID: 1}})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_ListPeriod(t *testing.T) {
	repo, mock := newSnapshotRepository(t)
	now := time.Now()

	columns := []string{"id", "run_id", "post_id", "period", "title", "post_date", "author", "last_editor",
		"classification", "ai_text", "human_text", "before_spans", "after_spans", "audited_at"}
	mock.ExpectQuery(`SELECT .* FROM audit_item WHERE period = \?`).
		WithArgs("2024-05").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("a", "run", 12, "2024-05", "Brand", now, "Jan", nil, "ai_written_edited",
				"er is brand", "er is grote brand", `[{"kind":1,"token":"brand"}]`, `[{"kind":2,"token":"grote"}]`, now).
			AddRow("b", "run", 11, "2024-05", "Weer", now, nil, "Piet", "fully_human_written",
				"", "zonnig", nil, nil, now))

	records, err := repo.ListPeriod(context.Background(), "2024-05")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, worddiff.AIEdited, records[0].Classification)
	assert.Equal(t, "Jan", records[0].Author)
	assert.Empty(t, records[0].LastEditor)
	require.NotNil(t, records[0].Diff())
	assert.Equal(t, []string{"grote"}, worddiff.Tokens(records[0].Diff().After, worddiff.Inserted))

	assert.Equal(t, worddiff.FullyHuman, records[1].Classification)
	assert.Nil(t, records[1].Diff())
	assert.Nil(t, records[1].Before)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_ListPeriod_LocalTime(t *testing.T) {
	amsterdam := time.FixedZone("CEST", 2*60*60)
	local := time.Local
	time.Local = amsterdam
	t.Cleanup(func() { time.Local = local })

	repo, mock := newSnapshotRepository(t)

	// 本地 2024-06-01 00:30 发布，DuckDB 读回为 UTC 的 2024-05-31 22:30
	published := time.Date(2024, 6, 1, 0, 30, 0, 0, amsterdam)
	columns := []string{"id", "run_id", "post_id", "period", "title", "post_date", "author", "last_editor",
		"classification", "ai_text", "human_text", "before_spans", "after_spans", "audited_at"}
	mock.ExpectQuery(`SELECT .* FROM audit_item WHERE period = \?`).
		WithArgs("2024-06").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("a", "run", 1, "2024-06", "Nacht", published.UTC(), "Jan", "Piet", "fully_human_written",
				"", "nachtbericht", nil, nil, published.UTC()))

	records, err := repo.ListPeriod(context.Background(), "2024-06")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.True(t, published.Equal(records[0].PostDate))
	assert.Equal(t, amsterdam, records[0].PostDate.Location())
	assert.Equal(t, "2024-06-01", records[0].PostDate.Format("2006-01-02"))
	assert.Equal(t, amsterdam, records[0].AuditedAt.Location())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_CountByPeriod(t *testing.T) {
	repo, mock := newSnapshotRepository(t)

	mock.ExpectQuery(`SELECT period, classification, COUNT\(\*\) AS total FROM audit_item GROUP BY period, classification`).
		WillReturnRows(sqlmock.NewRows([]string{"period", "classification", "total"}).
			AddRow("2024-05", "ai_written_edited", 4).
			AddRow("2024-05", "fully_human_written", 2).
			AddRow("2024-04", "ai_written_not_edited", 1))

	counts, err := repo.CountByPeriod(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.PeriodCount{
		{Period: "2024-05", Classification: worddiff.AIEdited, Total: 4},
		{Period: "2024-05", Classification: worddiff.FullyHuman, Total: 2},
		{Period: "2024-04", Classification: worddiff.AIUneditedVerbatim, Total: 1},
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_Count(t *testing.T) {
	repo, mock := newSnapshotRepository(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM audit_item`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestSnapshotRepository_NilDB(t *testing.T) {
	repo := store.NewSnapshotRepository(nil)
	ctx := context.Background()

	assert.Error(t, repo.EnsureSchema(ctx))
	assert.Error(t, repo.ReplacePeriod(ctx, "2024-05", nil))
	_, err := repo.ListPeriod(ctx, "2024-05")
	assert.Error(t, err)
	_, err = repo.CountByPeriod(ctx)
	assert.Error(t, err)
	_, err = repo.Count(ctx)
	assert.Error(t, err)
}
