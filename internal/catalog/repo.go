// Package catalog provides the repository interface and PostgreSQL
// implementation for managing products.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Filter struct {
	Category string
	Concern  string
	Search   string
	Limit    int
	Offset   int
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, f Filter) ([]Product, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, description, price, offer_price, category, concern,
		                      images, rating, review_count, ingredients, how_to_use, in_stock,
		                      created_at, updated_at)
		VALUES ($1,$2,$3,$4,NULLIF($5,'')::numeric,$6,$7,$8,$9,$10,$11,$12,$13,NOW(),NOW())
	`, p.ID, p.Name, p.Description, p.Price, p.OfferPrice, p.Category, p.Concern,
		p.Images, p.Rating, p.ReviewCount, p.Ingredients, p.HowToUse, p.InStock)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Product
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, price::text, COALESCE(offer_price::text,''), category,
		       concern, images, rating, review_count, ingredients, how_to_use, in_stock,
		       created_at, updated_at
		FROM products WHERE id=$1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OfferPrice, &p.Category,
		&p.Concern, &p.Images, &p.Rating, &p.ReviewCount, &p.Ingredients, &p.HowToUse,
		&p.InStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *PGRepo) List(ctx context.Context, f Filter) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	search := strings.TrimSpace(f.Search)

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, price::text, COALESCE(offer_price::text,''), category,
		       concern, images, rating, review_count, ingredients, how_to_use, in_stock,
		       created_at, updated_at
		FROM products
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR concern = $2)
		  AND ($3 = '' OR name ILIKE '%'||$3||'%' OR description ILIKE '%'||$3||'%')
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`, f.Category, f.Concern, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OfferPrice,
			&p.Category, &p.Concern, &p.Images, &p.Rating, &p.ReviewCount, &p.Ingredients,
			&p.HowToUse, &p.InStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PGRepo) Update(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $2,
		    description = $3,
		    price = $4,
		    offer_price = NULLIF($5,'')::numeric,
		    category = $6,
		    concern = $7,
		    images = $8,
		    rating = $9,
		    review_count = $10,
		    ingredients = $11,
		    how_to_use = $12,
		    in_stock = $13,
		    updated_at = NOW()
		WHERE id = $1
	`, p.ID, p.Name, p.Description, p.Price, p.OfferPrice, p.Category, p.Concern,
		p.Images, p.Rating, p.ReviewCount, p.Ingredients, p.HowToUse, p.InStock)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
