package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"news-events-api/internal/util"
)

// DateTime stores an event datetime in its canonical "YYYY-MM-DD HH:MM:SS"
// form. It scans from driver time.Time values (MySQL with parseTime=True) as
// well as raw strings, and marshals to JSON as the canonical string.
type DateTime string

// Scan implements sql.Scanner.
func (dt *DateTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*dt = ""
	case time.Time:
		*dt = DateTime(v.Format(util.DateTimeLayout))
	case []byte:
		*dt = DateTime(v)
	case string:
		*dt = DateTime(v)
	default:
		return fmt.Errorf("unsupported datetime scan type %T", value)
	}
	return nil
}

// Value implements driver.Valuer. The canonical string is bound as-is; the
// database casts it to its native datetime type.
func (dt DateTime) Value() (driver.Value, error) {
	return string(dt), nil
}

func (dt DateTime) String() string {
	return string(dt)
}
