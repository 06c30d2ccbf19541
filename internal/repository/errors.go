package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	errs "news-events-api/internal/errors"
)

// MySQL server error numbers for constraint violations.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
)

// constraintKind translates engine-level constraint signals into error kinds
// so the layers above never inspect driver error codes. The string fallbacks
// cover drivers that expose no numeric code (the sqlite driver used in tests).
func constraintKind(err error) errs.Kind {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrDuplicateEntry:
			return errs.KindDuplicateKey
		case mysqlErrRowIsReferenced, mysqlErrNoReferencedRow:
			return errs.KindForeignKey
		}
		return errs.KindInternal
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "Duplicate entry"):
		return errs.KindDuplicateKey
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return errs.KindForeignKey
	}
	return errs.KindInternal
}
