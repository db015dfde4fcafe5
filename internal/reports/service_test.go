package reports

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zubbicodes/adsonsLab/constants"
	"github.com/zubbicodes/adsonsLab/internal/common"
	"github.com/zubbicodes/adsonsLab/internal/entity"
	"github.com/zubbicodes/adsonsLab/internal/repository"
)

func testService(t *testing.T) (*Service, repository.ProductRepository, *sql.DB) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := repository.Open(context.Background(), common.DatabaseConfig{DSN: ":memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repository.Migrate(context.Background(), db, logger))

	products := repository.NewProductRepository(db, logger)
	reports := repository.NewReportRepository(db, logger)
	return NewService(products, reports, logger), products, db
}

func TestGenerateAppliesDefaults(t *testing.T) {
	svc, products, _ := testService(t)
	ctx := context.Background()

	_, err := products.Create(ctx, &entity.Product{
		ProductCode: "EL-45", Description: "ELASTIC", Width: "45MM", Color: "BLACK",
	})
	require.NoError(t, err)

	rep, err := svc.Generate(ctx, GenerateRequest{ProductCode: "EL-45", PONumber: "57216"})
	require.NoError(t, err)

	assert.Equal(t, "EL-45", rep.ItemNumber, "item number defaults to product code")
	assert.Equal(t, "Elastic 45MM", rep.ProductDescription)
	assert.Equal(t, "BLACK", rep.Color)
	assert.Equal(t, constants.RequirementASTCC, rep.ShrinkageRequirement)
	assert.Equal(t, constants.DefaultTemp, rep.Temp)
	assert.Equal(t, string(constants.ResultPass), rep.Result)
	assert.NotEmpty(t, rep.Date)
}

func TestGenerateKeepsExplicitFields(t *testing.T) {
	svc, products, _ := testService(t)
	ctx := context.Background()

	_, err := products.Create(ctx, &entity.Product{ProductCode: "EL-45", Width: "45MM", Color: "BLACK"})
	require.NoError(t, err)

	rep, err := svc.Generate(ctx, GenerateRequest{
		ProductCode:          "EL-45",
		PONumber:             "57216",
		Date:                 "10/21/2025",
		ItemNumber:           "ITEM-9",
		ShrinkageRequirement: constants.RequirementISO,
		Temp:                 "60C",
		DimensionalChange:    "-1.65%",
		PH:                   "5.2",
		Result:               string(constants.ResultFail),
	})
	require.NoError(t, err)

	assert.Equal(t, "ITEM-9", rep.ItemNumber)
	assert.Equal(t, constants.RequirementISO, rep.ShrinkageRequirement)
	assert.Equal(t, "60C", rep.Temp)
	assert.Equal(t, "Fail", rep.Result)
	assert.Equal(t, "10/21/2025", rep.Date)
}

func TestGenerateValidation(t *testing.T) {
	svc, _, _ := testService(t)

	_, err := svc.Generate(context.Background(), GenerateRequest{PONumber: "57216"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Generate(context.Background(), GenerateRequest{ProductCode: "EL-45"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestGenerateUnknownProduct(t *testing.T) {
	svc, _, _ := testService(t)

	_, err := svc.Generate(context.Background(), GenerateRequest{ProductCode: "NOPE", PONumber: "1"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
