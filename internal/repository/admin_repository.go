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

var adminColumns = []string{"id", "email", "password", "name", "created_at", "updated_at"}

// AdminRepository defines admin persistence operations.
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id int64) (*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	Update(ctx context.Context, admin *model.Admin) error
}

type adminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository builds a sqlx-backed admin repository.
func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	query, args, err := sq.Insert("admins").
		Columns("email", "password", "name", "created_at", "updated_at").
		Values(admin.Email, admin.Password, admin.Name, admin.CreatedAt, admin.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert admin: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if constraintKind(err) == errs.KindDuplicateKey {
			return errs.Wrap(errs.KindDuplicateKey, "Admin with this email already exists", err)
		}
		return fmt.Errorf("insert admin: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read admin insert id: %w", err)
	}
	admin.ID = id
	return nil
}

func (r *adminRepository) FindByID(ctx context.Context, id int64) (*model.Admin, error) {
	query, args, err := sq.Select(adminColumns...).
		From("admins").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select admin: %w", err)
	}

	var admin model.Admin
	if err := r.db.GetContext(ctx, &admin, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.Wrap(errs.KindNotFound, "Admin not found", err)
		}
		return nil, fmt.Errorf("select admin by id: %w", err)
	}
	return &admin, nil
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	query, args, err := sq.Select(adminColumns...).
		From("admins").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select admin: %w", err)
	}

	var admin model.Admin
	if err := r.db.GetContext(ctx, &admin, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.Wrap(errs.KindNotFound, "Admin not found", err)
		}
		return nil, fmt.Errorf("select admin by email: %w", err)
	}
	return &admin, nil
}

func (r *adminRepository) List(ctx context.Context) ([]model.Admin, error) {
	query, args, err := sq.Select(adminColumns...).
		From("admins").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select admins: %w", err)
	}

	admins := []model.Admin{}
	if err := r.db.SelectContext(ctx, &admins, query, args...); err != nil {
		return nil, fmt.Errorf("select admins: %w", err)
	}
	return admins, nil
}

func (r *adminRepository) Update(ctx context.Context, admin *model.Admin) error {
	admin.UpdatedAt = time.Now()

	query, args, err := sq.Update("admins").
		Set("name", admin.Name).
		Set("password", admin.Password).
		Set("updated_at", admin.UpdatedAt).
		Where(sq.Eq{"id": admin.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update admin: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	return nil
}
