// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers to distinguish
// between failure scenarios without inspecting driver errors.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup, update or delete matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a unique key,
// such as registering a vendor_auth email twice.
var ErrDuplicate = errors.New("duplicate")

// ErrConflict is returned when a write cannot proceed because of existing
// state: an overlapping reservation under the reject policy, or a delete
// blocked by the restrict policy.
var ErrConflict = errors.New("conflict")

// ErrReferenced is returned when the engine refuses a delete because
// another row still references the target (MySQL 1451).
var ErrReferenced = errors.New("row is still referenced")

const (
	mysqlDuplicateEntry = 1062
	mysqlRowReferenced  = 1451
)

// translate maps well-known MySQL errors onto the sentinels above and
// returns every other error unchanged.
func translate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry:
			return ErrDuplicate
		case mysqlRowReferenced:
			return ErrReferenced
		}
	}
	return err
}
