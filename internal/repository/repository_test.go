package repository

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zubbicodes/adsonsLab/internal/common"
	"github.com/zubbicodes/adsonsLab/internal/entity"
)

func testDB(t *testing.T) (*sql.DB, *slog.Logger) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Open(context.Background(), common.DatabaseConfig{DSN: ":memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(context.Background(), db, logger))
	return db, logger
}

func TestProductCRUD(t *testing.T) {
	db, logger := testDB(t)
	repo := NewProductRepository(db, logger)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.Product{
		ProductCode: "EL-45",
		Description: "ELASTIC",
		Width:       "45MM",
		Color:       "BLACK",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, &entity.Product{ProductCode: "AL-20", Width: "20MM", Color: "WHITE"})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "AL-20", list[0].ProductCode, "listing orders by product_code")
	assert.Equal(t, "EL-45", list[1].ProductCode)

	got, err := repo.GetByCode(ctx, "EL-45")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "BLACK", got.Color)

	got.Color = "WHITE"
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByCode(ctx, "EL-45")
	require.NoError(t, err)
	assert.Equal(t, "WHITE", got.Color)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByCode(ctx, "EL-45")
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestReportLifecycle(t *testing.T) {
	db, logger := testDB(t)
	repo := NewReportRepository(db, logger)
	ctx := context.Background()

	first, err := repo.Create(ctx, &entity.ShrinkageReport{
		ProductCode:          "EL-45",
		PONumber:             "57216",
		Date:                 "10/21/2025",
		ItemNumber:           "EL-45",
		ProductDescription:   "Elastic 45MM",
		Color:                "BLACK",
		ShrinkageRequirement: "ASTCC 135-15 = -50",
		Temp:                 "+/- 3%",
		DimensionalChange:    "-1.65%",
		PH:                   "5.2",
		Result:               "Pass",
	})
	require.NoError(t, err)

	second, err := repo.Create(ctx, &entity.ShrinkageReport{ProductCode: "AL-20", PONumber: "9"})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "listing is newest first")

	got, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pass", got.Result)
	assert.Equal(t, "5.2", got.PH)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.Get(ctx, first.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPaperSaveAndReload(t *testing.T) {
	db, logger := testDB(t)
	repo := NewPaperRepository(db, logger)
	ctx := context.Background()

	doc := &entity.Document{
		Header: entity.DocumentHeader{
			DCNo:       "123",
			PONo:       "57216",
			Date:       "2025-10-21",
			AccName:    "ACME Textiles",
			AccAddress: "Faisalabad",
			Remarks:    "Via truck",
			HeaderNote: "handle with care",
		},
		Items: []entity.LineItem{
			{SR: 1, DetailName: "Black Elastic 45MM", Unit: "MTR", JobNo: "J1",
				Pack: 2, Qty: 100, Weight: 10, PONo: "57216", DCNo: "123"},
			{SR: 2, DetailName: "White Elastic 20MM", Unit: "MTR", JobNo: "J2",
				Pack: 3, Qty: 200, Weight: 5, PONo: "57216", DCNo: "123", Remarks: "repacked"},
		},
		Totals: entity.Totals{Pack: 5, Qty: 300, Weight: 15},
	}

	id, err := repo.SaveDocument(ctx, doc)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	papers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, papers, 1)
	assert.Equal(t, "123", papers[0].DCNo)
	assert.Equal(t, "handle with care", papers[0].HeaderNote)

	paper, loaded, err := repo.GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, paper.ID)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, 1, loaded.Items[0].SR)
	assert.Equal(t, "repacked", loaded.Items[1].Remarks)
	assert.InDelta(t, 5, loaded.Totals.Pack, 1e-9, "totals recomputed from stored rows")
	assert.InDelta(t, 15, loaded.Totals.Weight, 1e-9)

	require.NoError(t, repo.Delete(ctx, id))
	_, _, err = repo.GetDocument(ctx, id)
	assert.ErrorIs(t, err, common.ErrNotFound)

	var orphans int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM loading_paper_items`).Scan(&orphans))
	assert.Zero(t, orphans)
}
