// Package repository holds the MySQL receipt archive.  The sentinel values
// below let handlers map storage failures to HTTP statuses without
// inspecting driver errors themselves.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrReceiptNotFound is returned when no receipt has the requested id.
// Handlers should translate this into an HTTP 404 response.
var ErrReceiptNotFound = errors.New("receipt not found")

// ErrConflict is returned when a receipt with the same id was already
// archived.  Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// mysqlDuplicateEntry is the server error number for a unique key
// violation.
const mysqlDuplicateEntry = 1062

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
