package server

import (
	"context"
	"encoding/json"
	"fmt"

	"food-details/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Store defines the database methods needed by the food handlers.
// Lookups of missing rows return pgx.ErrNoRows.
type Store interface {
	GetFood(ctx context.Context, id int64) (models.Food, error)
	ListFavorites(ctx context.Context) ([]models.Favorite, error)
	UpsertFavorite(ctx context.Context, fav models.Favorite) error
	DeleteFavorite(ctx context.Context, id int64) error
	CreateOrder(ctx context.Context, o models.Order) (models.Order, error)
}

// PGStore implements Store on the tables created by the embedded migrations.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Prices are read as text and parsed with decimal so no precision is lost
// between NUMERIC and the API.
func parseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse money %q: %w", s, err)
	}
	return d, nil
}

func (p *PGStore) GetFood(ctx context.Context, id int64) (models.Food, error) {
	var f models.Food
	var price string
	err := p.pool.QueryRow(ctx, `
		SELECT id, name, description, price::text, image_url, thumbnail_url, category
		FROM foods WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.Name, &f.Description, &price, &f.ImageURL, &f.ThumbnailURL, &f.Category)
	if err != nil {
		return models.Food{}, err
	}
	if f.Price, err = parseMoney(price); err != nil {
		return models.Food{}, err
	}

	rows, err := p.pool.Query(ctx, `
		SELECT id, name, value::text FROM food_extras
		WHERE food_id = $1
		ORDER BY id`,
		id,
	)
	if err != nil {
		return models.Food{}, err
	}
	defer rows.Close()

	f.Extras = []models.Extra{}
	for rows.Next() {
		var e models.Extra
		var value string
		if err := rows.Scan(&e.ID, &e.Name, &value); err != nil {
			return models.Food{}, err
		}
		if e.Value, err = parseMoney(value); err != nil {
			return models.Food{}, err
		}
		f.Extras = append(f.Extras, e)
	}
	return f, rows.Err()
}

func (p *PGStore) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, description, price::text, image_url, thumbnail_url, category
		FROM favorites
		ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favs := []models.Favorite{}
	for rows.Next() {
		var f models.Favorite
		var price string
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &price, &f.ImageURL, &f.ThumbnailURL, &f.Category); err != nil {
			return nil, err
		}
		if f.Price, err = parseMoney(price); err != nil {
			return nil, err
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}

func (p *PGStore) UpsertFavorite(ctx context.Context, fav models.Favorite) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO favorites (id, name, description, price, image_url, thumbnail_url, category, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, now())
		ON CONFLICT (id) DO UPDATE SET
			name = $2,
			description = $3,
			price = $4::numeric,
			image_url = $5,
			thumbnail_url = $6,
			category = $7`,
		fav.ID, fav.Name, fav.Description, fav.Price.String(), fav.ImageURL, fav.ThumbnailURL, fav.Category,
	)
	return err
}

func (p *PGStore) DeleteFavorite(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (p *PGStore) CreateOrder(ctx context.Context, o models.Order) (models.Order, error) {
	if o.Extras == nil {
		o.Extras = []models.Extra{}
	}
	extrasJSON, err := json.Marshal(o.Extras)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to marshal order extras: %w", err)
	}

	err = p.pool.QueryRow(ctx, `
		INSERT INTO orders (product_id, name, description, price, category, thumbnail_url, extras)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
		RETURNING id`,
		o.ProductID, o.Name, o.Description, o.Price.String(), o.Category, o.ThumbnailURL, extrasJSON,
	).Scan(&o.ID)
	if err != nil {
		return models.Order{}, err
	}
	return o, nil
}
