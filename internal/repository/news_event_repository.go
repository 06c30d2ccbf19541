package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	errs "news-events-api/internal/errors"
	"news-events-api/internal/model"
)

var newsEventColumns = []string{
	"id", "category_id", "title", "description", "location",
	"cover_image", "date_time", "status", "created_by", "created_at", "updated_at",
}

// NewsEventFilter narrows list and count queries. Limit and Offset are
// rendered into the SQL text after validation upstream; they are never bound
// as query parameters. DateFrom and DateTo hold canonical datetime strings
// and are bound inclusively.
type NewsEventFilter struct {
	CategoryID *int64
	Status     string
	Search     string
	DateFrom   string
	DateTo     string
	Limit      uint64
	Offset     uint64
}

func (f NewsEventFilter) apply(builder sq.SelectBuilder) sq.SelectBuilder {
	if f.CategoryID != nil {
		builder = builder.Where(sq.Eq{"category_id": *f.CategoryID})
	}
	if f.Status != "" {
		builder = builder.Where(sq.Eq{"status": f.Status})
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		builder = builder.Where(sq.Or{
			sq.Like{"title": like},
			sq.Like{"description": like},
			sq.Like{"location": like},
		})
	}
	if f.DateFrom != "" {
		builder = builder.Where(sq.GtOrEq{"date_time": f.DateFrom})
	}
	if f.DateTo != "" {
		builder = builder.Where(sq.LtOrEq{"date_time": f.DateTo})
	}
	return builder
}

// NewsEventRepository defines news and events persistence operations.
type NewsEventRepository interface {
	Create(ctx context.Context, item *model.NewsEvent) error
	FindByID(ctx context.Context, id int64) (*model.NewsEvent, error)
	FindAll(ctx context.Context, filter NewsEventFilter) ([]model.NewsEvent, error)
	Count(ctx context.Context, filter NewsEventFilter) (int64, error)
	Update(ctx context.Context, item *model.NewsEvent) error
	Delete(ctx context.Context, id int64) error
}

type newsEventRepository struct {
	db *sqlx.DB
}

// NewNewsEventRepository builds a sqlx-backed news and events repository.
func NewNewsEventRepository(db *sqlx.DB) NewsEventRepository {
	return &newsEventRepository{db: db}
}

func (r *newsEventRepository) Create(ctx context.Context, item *model.NewsEvent) error {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	query, args, err := sq.Insert("news_and_events").
		Columns("category_id", "title", "description", "location",
			"cover_image", "date_time", "status", "created_by", "created_at", "updated_at").
		Values(item.CategoryID, item.Title, item.Description, item.Location,
			item.CoverImage, item.DateTime, item.Status, item.CreatedBy, item.CreatedAt, item.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert news item: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if constraintKind(err) == errs.KindForeignKey {
			return errs.Wrap(errs.KindForeignKey, "Invalid category ID", err)
		}
		return fmt.Errorf("insert news item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read news item insert id: %w", err)
	}
	item.ID = id
	return nil
}

func (r *newsEventRepository) FindByID(ctx context.Context, id int64) (*model.NewsEvent, error) {
	query, args, err := sq.Select(newsEventColumns...).
		From("news_and_events").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select news item: %w", err)
	}

	var item model.NewsEvent
	if err := r.db.GetContext(ctx, &item, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.Wrap(errs.KindNotFound, "News and events item not found", err)
		}
		return nil, fmt.Errorf("select news item by id: %w", err)
	}
	return &item, nil
}

func (r *newsEventRepository) FindAll(ctx context.Context, filter NewsEventFilter) ([]model.NewsEvent, error) {
	builder := filter.apply(sq.Select(newsEventColumns...).From("news_and_events")).
		OrderBy("date_time DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select news items: %w", err)
	}

	items := []model.NewsEvent{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("select news items: %w", err)
	}
	return items, nil
}

func (r *newsEventRepository) Count(ctx context.Context, filter NewsEventFilter) (int64, error) {
	query, args, err := filter.apply(sq.Select("COUNT(*)").From("news_and_events")).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count news items: %w", err)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count news items: %w", err)
	}
	return total, nil
}

func (r *newsEventRepository) Update(ctx context.Context, item *model.NewsEvent) error {
	item.UpdatedAt = time.Now()

	query, args, err := sq.Update("news_and_events").
		Set("category_id", item.CategoryID).
		Set("title", item.Title).
		Set("description", item.Description).
		Set("location", item.Location).
		Set("cover_image", item.CoverImage).
		Set("date_time", item.DateTime).
		Set("status", item.Status).
		Set("updated_at", item.UpdatedAt).
		Where(sq.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update news item: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraintKind(err) == errs.KindForeignKey {
			return errs.Wrap(errs.KindForeignKey, "Invalid category ID", err)
		}
		return fmt.Errorf("update news item: %w", err)
	}
	return nil
}

func (r *newsEventRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete("news_and_events").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete news item: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete news item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read delete news item result: %w", err)
	}
	if affected == 0 {
		return errs.E(errs.KindNotFound, "News and events item not found")
	}
	return nil
}
