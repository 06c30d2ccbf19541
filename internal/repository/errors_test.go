package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"

	errs "news-events-api/internal/errors"
)

func TestConstraintKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{
			name: "mysql duplicate entry",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'news' for key 'uq_categories_slug'"},
			want: errs.KindDuplicateKey,
		},
		{
			name: "mysql row is referenced",
			err:  &mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"},
			want: errs.KindForeignKey,
		},
		{
			name: "mysql no referenced row",
			err:  &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"},
			want: errs.KindForeignKey,
		},
		{
			name: "mysql unrelated error number",
			err:  &mysql.MySQLError{Number: 1045, Message: "Access denied"},
			want: errs.KindInternal,
		},
		{
			name: "wrapped mysql error",
			err:  fmt.Errorf("insert category: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}),
			want: errs.KindDuplicateKey,
		},
		{
			name: "sqlite unique violation",
			err:  errors.New("UNIQUE constraint failed: admins.email"),
			want: errs.KindDuplicateKey,
		},
		{
			name: "sqlite foreign key violation",
			err:  errors.New("FOREIGN KEY constraint failed"),
			want: errs.KindForeignKey,
		},
		{
			name: "unrelated error",
			err:  errors.New("disk I/O error"),
			want: errs.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, constraintKind(tt.err))
		})
	}
}
