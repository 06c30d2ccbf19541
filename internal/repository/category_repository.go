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

var categoryColumns = []string{"id", "name", "slug", "description", "status", "created_at", "updated_at"}

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	// FindAll returns categories, narrowed to one publication status when
	// status is non-empty.
	FindAll(ctx context.Context, status string) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) error
}

type categoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository builds a sqlx-backed category repository.
func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	query, args, err := sq.Insert("categories").
		Columns("name", "slug", "description", "status", "created_at", "updated_at").
		Values(category.Name, category.Slug, category.Description, category.Status, category.CreatedAt, category.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert category: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if constraintKind(err) == errs.KindDuplicateKey {
			return errs.Wrap(errs.KindDuplicateKey, "Category with this slug already exists", err)
		}
		return fmt.Errorf("insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read category insert id: %w", err)
	}
	category.ID = id
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	query, args, err := sq.Select(categoryColumns...).
		From("categories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select category: %w", err)
	}

	var category model.Category
	if err := r.db.GetContext(ctx, &category, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.Wrap(errs.KindNotFound, "Category not found", err)
		}
		return nil, fmt.Errorf("select category by id: %w", err)
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	query, args, err := sq.Select(categoryColumns...).
		From("categories").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select category: %w", err)
	}

	var category model.Category
	if err := r.db.GetContext(ctx, &category, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.Wrap(errs.KindNotFound, "Category not found", err)
		}
		return nil, fmt.Errorf("select category by slug: %w", err)
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context, status string) ([]model.Category, error) {
	builder := sq.Select(categoryColumns...).
		From("categories").
		OrderBy("name ASC")
	if status != "" {
		builder = builder.Where(sq.Eq{"status": status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select categories: %w", err)
	}

	categories := []model.Category{}
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	category.UpdatedAt = time.Now()

	query, args, err := sq.Update("categories").
		Set("name", category.Name).
		Set("slug", category.Slug).
		Set("description", category.Description).
		Set("status", category.Status).
		Set("updated_at", category.UpdatedAt).
		Where(sq.Eq{"id": category.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update category: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraintKind(err) == errs.KindDuplicateKey {
			return errs.Wrap(errs.KindDuplicateKey, "Category with this slug already exists", err)
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete("categories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete category: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if constraintKind(err) == errs.KindForeignKey {
			return errs.Wrap(errs.KindForeignKey, "Cannot delete category with existing news and events", err)
		}
		return fmt.Errorf("delete category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read delete category result: %w", err)
	}
	if affected == 0 {
		return errs.E(errs.KindNotFound, "Category not found")
	}
	return nil
}
