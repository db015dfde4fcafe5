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

type ProductRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewProductRepository(db *sql.DB, logger *slog.Logger) ProductRepository {
	return &productRepository{db: db, logger: logger}
}

func (r *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_code, description, width, color, created_at
		 FROM products ORDER BY product_code`)
	if err != nil {
		r.logger.Error("failed to list products", "error", err)
		return nil, common.WrapError(err, "list products")
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, product_code, description, width, color, created_at
		 FROM products WHERE product_code = $1`, code)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return p, err
}

func (r *productRepository) Create(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, product_code, description, width, color, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID.String(), p.ProductCode, p.Description, p.Width, p.Color,
		p.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		r.logger.Error("failed to create product", "product_code", p.ProductCode, "error", err)
		return nil, common.WrapError(err, "create product")
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET product_code = $1, description = $2, width = $3, color = $4
		 WHERE id = $5`,
		p.ProductCode, p.Description, p.Width, p.Color, p.ID.String())
	if err != nil {
		r.logger.Error("failed to update product", "id", p.ID, "error", err)
		return common.WrapError(err, "update product")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id.String())
	if err != nil {
		r.logger.Error("failed to delete product", "id", id, "error", err)
		return common.WrapError(err, "delete product")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p        entity.Product
		id, created string
	)
	if err := row.Scan(&id, &p.ProductCode, &p.Description, &p.Width, &p.Color, &created); err != nil {
		return nil, err
	}
	var err error
	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return &p, nil
}
