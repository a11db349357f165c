package closetrepo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/renaqiu/stylematch/internal/domain/closet"
)

// PostgresRepository implements closet.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List returns the wardrobe snapshot ordered by insertion time.
func (r *PostgresRepository) List(ctx context.Context) ([]closet.WardrobeItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category, colors, style_tags, match_signals, image_key, added_at
		FROM closet_items
		ORDER BY added_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []closet.WardrobeItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Insert stores a new owned item, including its color-signature vector.
func (r *PostgresRepository) Insert(ctx context.Context, item closet.WardrobeItem) (closet.WardrobeItem, error) {
	colors, err := json.Marshal(item.Colors)
	if err != nil {
		return closet.WardrobeItem{}, err
	}
	signals, err := json.Marshal(item.Match)
	if err != nil {
		return closet.WardrobeItem{}, err
	}
	var vector any
	if len(item.ColorVector) > 0 {
		vector = pgvector.NewVector(item.ColorVector)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO closet_items (id, category, colors, style_tags, match_signals, image_key, color_vector, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, item.ID, string(item.Category), colors, item.StyleTags, signals, nullable(item.ImageKey), vector, item.AddedAt)
	if err != nil {
		return closet.WardrobeItem{}, err
	}
	return item, nil
}

// Delete removes an owned item.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM closet_items WHERE id = $1`, id)
	return err
}

// FindSimilar returns the closest owned item by color-signature distance.
func (r *PostgresRepository) FindSimilar(ctx context.Context, vector []float32) (closet.SimilarityMatch, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category, colors, style_tags, match_signals, image_key, added_at, color_vector <-> $1 AS distance
		FROM closet_items
		WHERE color_vector IS NOT NULL
		ORDER BY color_vector <-> $1
		LIMIT 1
	`, pgvector.NewVector(vector))
	if err != nil {
		return closet.SimilarityMatch{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return closet.SimilarityMatch{}, false, rows.Err()
	}
	var distance float64
	item, err := scanItem(rows, &distance)
	if err != nil {
		return closet.SimilarityMatch{}, false, err
	}
	return closet.SimilarityMatch{Item: item, Distance: distance}, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner, extras ...any) (closet.WardrobeItem, error) {
	var (
		item     closet.WardrobeItem
		category string
		colors   []byte
		signals  []byte
		imageKey sql.NullString
	)
	args := []any{&item.ID, &category, &colors, &item.StyleTags, &signals, &imageKey, &item.AddedAt}
	args = append(args, extras...)
	if err := row.Scan(args...); err != nil {
		return closet.WardrobeItem{}, err
	}
	item.Category = closet.Category(category)
	if len(colors) > 0 {
		if err := json.Unmarshal(colors, &item.Colors); err != nil {
			return closet.WardrobeItem{}, err
		}
	}
	if len(signals) > 0 {
		if err := json.Unmarshal(signals, &item.Match); err != nil {
			return closet.WardrobeItem{}, err
		}
	}
	if imageKey.Valid {
		item.ImageKey = imageKey.String
	}
	return item, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ closet.Repository = (*PostgresRepository)(nil)
