package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zubbicodes/adsonsLab/internal/common"
	"github.com/zubbicodes/adsonsLab/internal/entity"
)

type ReportRepository interface {
	List(ctx context.Context) ([]*entity.ShrinkageReport, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.ShrinkageReport, error)
	Create(ctx context.Context, rep *entity.ShrinkageReport) (*entity.ShrinkageReport, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reportRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewReportRepository(db *sql.DB, logger *slog.Logger) ReportRepository {
	return &reportRepository{db: db, logger: logger}
}

const reportColumns = `id, product_code, po_number, dc_number, date, item_number,
	product_description, color, shrinkage_requirement, temp, dimensional_change,
	ph, result, created_at, updated_at`

func (r *reportRepository) List(ctx context.Context) ([]*entity.ShrinkageReport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reportColumns+` FROM shrinkage_reports ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list reports", "error", err)
		return nil, common.WrapError(err, "list reports")
	}
	defer rows.Close()

	var out []*entity.ShrinkageReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *reportRepository) Get(ctx context.Context, id uuid.UUID) (*entity.ShrinkageReport, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM shrinkage_reports WHERE id = $1`, id.String())
	rep, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return rep, err
}

func (r *reportRepository) Create(ctx context.Context, rep *entity.ShrinkageReport) (*entity.ShrinkageReport, error) {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	now := time.Now().UTC()
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = now
	}
	rep.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO shrinkage_reports (`+reportColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		rep.ID.String(), rep.ProductCode, rep.PONumber, rep.DCNumber, rep.Date,
		rep.ItemNumber, rep.ProductDescription, rep.Color, rep.ShrinkageRequirement,
		rep.Temp, rep.DimensionalChange, rep.PH, rep.Result,
		rep.CreatedAt.Format(time.RFC3339Nano), rep.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		r.logger.Error("failed to create report", "product_code", rep.ProductCode, "error", err)
		return nil, common.WrapError(err, "create report")
	}
	return rep, nil
}

func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shrinkage_reports WHERE id = $1`, id.String())
	if err != nil {
		r.logger.Error("failed to delete report", "id", id, "error", err)
		return common.WrapError(err, "delete report")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanReport(row rowScanner) (*entity.ShrinkageReport, error) {
	var (
		rep         entity.ShrinkageReport
		id          string
		created     string
		updated     string
	)
	if err := row.Scan(&id, &rep.ProductCode, &rep.PONumber, &rep.DCNumber, &rep.Date,
		&rep.ItemNumber, &rep.ProductDescription, &rep.Color, &rep.ShrinkageRequirement,
		&rep.Temp, &rep.DimensionalChange, &rep.PH, &rep.Result, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if rep.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	rep.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	rep.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return &rep, nil
}
