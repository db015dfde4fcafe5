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
	"github.com/zubbicodes/adsonsLab/internal/loadingpaper"
)

type PaperRepository interface {
	// SaveDocument persists the header first, then the items carrying the
	// generated id. The two steps are not transactional: a failed item insert
	// leaves the parent row behind, matching the hosted store's contract.
	SaveDocument(ctx context.Context, doc *entity.Document) (uuid.UUID, error)
	List(ctx context.Context) ([]*entity.Paper, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*entity.Paper, *entity.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type paperRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPaperRepository(db *sql.DB, logger *slog.Logger) PaperRepository {
	return &paperRepository{db: db, logger: logger}
}

func (r *paperRepository) SaveDocument(ctx context.Context, doc *entity.Document) (uuid.UUID, error) {
	paperID := uuid.New()
	now := time.Now().UTC()

	h := doc.Header
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO loading_papers (id, dc_no, po_no, date, acc_name, acc_address, remarks, header_note, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		paperID.String(), h.DCNo, h.PONo, h.Date, h.AccName, h.AccAddress,
		h.Remarks, h.HeaderNote, now.Format(time.RFC3339Nano))
	if err != nil {
		r.logger.Error("failed to create loading paper", "dc_no", h.DCNo, "error", err)
		return uuid.Nil, common.WrapError(err, "create loading paper")
	}

	for _, it := range doc.Items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO loading_paper_items
			 (id, paper_id, sr, detail_name, unit, job_no, pack, qty, weight, po_no, dc_no, remarks)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			uuid.New().String(), paperID.String(), it.SR, it.DetailName, it.Unit,
			it.JobNo, it.Pack, it.Qty, it.Weight, it.PONo, it.DCNo, it.Remarks)
		if err != nil {
			r.logger.Error("failed to insert loading paper item",
				"paper_id", paperID, "sr", it.SR, "error", err)
			return uuid.Nil, common.WrapError(err, "insert loading paper items")
		}
	}
	return paperID, nil
}

func (r *paperRepository) List(ctx context.Context) ([]*entity.Paper, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, dc_no, po_no, date, acc_name, acc_address, remarks, header_note, created_at
		 FROM loading_papers ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list loading papers", "error", err)
		return nil, common.WrapError(err, "list loading papers")
	}
	defer rows.Close()

	var out []*entity.Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetDocument rebuilds the in-memory document from a saved paper: items come
// back in serial order and totals are recomputed from the stored rows.
func (r *paperRepository) GetDocument(ctx context.Context, id uuid.UUID) (*entity.Paper, *entity.Document, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, dc_no, po_no, date, acc_name, acc_address, remarks, header_note, created_at
		 FROM loading_papers WHERE id = $1`, id.String())
	p, err := scanPaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, common.ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT sr, detail_name, unit, job_no, pack, qty, weight, po_no, dc_no, remarks
		 FROM loading_paper_items WHERE paper_id = $1 ORDER BY sr`, id.String())
	if err != nil {
		r.logger.Error("failed to load paper items", "paper_id", id, "error", err)
		return nil, nil, common.WrapError(err, "load paper items")
	}
	defer rows.Close()

	var items []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.SR, &it.DetailName, &it.Unit, &it.JobNo,
			&it.Pack, &it.Qty, &it.Weight, &it.PONo, &it.DCNo, &it.Remarks); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	doc := &entity.Document{
		Header: entity.DocumentHeader{
			DCNo:       p.DCNo,
			PONo:       p.PONo,
			Date:       p.Date,
			AccName:    p.AccName,
			AccAddress: p.AccAddress,
			Remarks:    p.Remarks,
			HeaderNote: p.HeaderNote,
		},
		Items:  items,
		Totals: loadingpaper.ComputeTotals(items),
	}
	return p, doc, nil
}

func (r *paperRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM loading_paper_items WHERE paper_id = $1`, id.String()); err != nil {
		r.logger.Error("failed to delete loading paper items", "paper_id", id, "error", err)
		return common.WrapError(err, "delete loading paper items")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM loading_papers WHERE id = $1`, id.String())
	if err != nil {
		r.logger.Error("failed to delete loading paper", "id", id, "error", err)
		return common.WrapError(err, "delete loading paper")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanPaper(row rowScanner) (*entity.Paper, error) {
	var (
		p       entity.Paper
		id      string
		created string
	)
	if err := row.Scan(&id, &p.DCNo, &p.PONo, &p.Date, &p.AccName, &p.AccAddress,
		&p.Remarks, &p.HeaderNote, &created); err != nil {
		return nil, err
	}
	var err error
	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return &p, nil
}
