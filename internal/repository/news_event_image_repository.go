package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"news-events-api/internal/model"
)

var newsEventImageColumns = []string{"id", "news_and_events_id", "image_url", "image_order", "created_at"}

// NewsEventImageRepository defines gallery image persistence operations.
// Rows are always read back ordered by their explicit position, with
// insertion time as the tiebreak.
type NewsEventImageRepository interface {
	FindByItem(ctx context.Context, newsEventID int64) ([]model.NewsEventImage, error)
	FindByItems(ctx context.Context, newsEventIDs []int64) (map[int64][]model.NewsEventImage, error)
	Insert(ctx context.Context, img *model.NewsEventImage) error
	UpdateOrder(ctx context.Context, id int64, order int) error
	Delete(ctx context.Context, id int64) error
	// DeleteByItem removes every image row of an item. It is idempotent and
	// reports no error when nothing matched.
	DeleteByItem(ctx context.Context, newsEventID int64) error
}

type newsEventImageRepository struct {
	db *sqlx.DB
}

// NewNewsEventImageRepository builds a sqlx-backed gallery image repository.
func NewNewsEventImageRepository(db *sqlx.DB) NewsEventImageRepository {
	return &newsEventImageRepository{db: db}
}

func (r *newsEventImageRepository) FindByItem(ctx context.Context, newsEventID int64) ([]model.NewsEventImage, error) {
	query, args, err := sq.Select(newsEventImageColumns...).
		From("news_and_events_images").
		Where(sq.Eq{"news_and_events_id": newsEventID}).
		OrderBy("image_order ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select news images: %w", err)
	}

	images := []model.NewsEventImage{}
	if err := r.db.SelectContext(ctx, &images, query, args...); err != nil {
		return nil, fmt.Errorf("select news images: %w", err)
	}
	return images, nil
}

func (r *newsEventImageRepository) FindByItems(ctx context.Context, newsEventIDs []int64) (map[int64][]model.NewsEventImage, error) {
	grouped := make(map[int64][]model.NewsEventImage, len(newsEventIDs))
	if len(newsEventIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sq.Select(newsEventImageColumns...).
		From("news_and_events_images").
		Where(sq.Eq{"news_and_events_id": newsEventIDs}).
		OrderBy("image_order ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select news images: %w", err)
	}

	images := []model.NewsEventImage{}
	if err := r.db.SelectContext(ctx, &images, query, args...); err != nil {
		return nil, fmt.Errorf("select news images: %w", err)
	}

	for _, img := range images {
		grouped[img.NewsEventID] = append(grouped[img.NewsEventID], img)
	}
	return grouped, nil
}

func (r *newsEventImageRepository) Insert(ctx context.Context, img *model.NewsEventImage) error {
	img.CreatedAt = time.Now()

	query, args, err := sq.Insert("news_and_events_images").
		Columns("news_and_events_id", "image_url", "image_order", "created_at").
		Values(img.NewsEventID, img.ImageURL, img.ImageOrder, img.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert news image: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert news image: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read news image insert id: %w", err)
	}
	img.ID = id
	return nil
}

func (r *newsEventImageRepository) UpdateOrder(ctx context.Context, id int64, order int) error {
	query, args, err := sq.Update("news_and_events_images").
		Set("image_order", order).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update news image order: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update news image order: %w", err)
	}
	return nil
}

func (r *newsEventImageRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete("news_and_events_images").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete news image: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete news image: %w", err)
	}
	return nil
}

func (r *newsEventImageRepository) DeleteByItem(ctx context.Context, newsEventID int64) error {
	query, args, err := sq.Delete("news_and_events_images").
		Where(sq.Eq{"news_and_events_id": newsEventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete news images: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete news images: %w", err)
	}
	return nil
}
