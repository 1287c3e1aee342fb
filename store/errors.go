package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrPlantNotFound is returned when no row matches the requested identifier.
var ErrPlantNotFound = errors.New("plant not found")

// Kind narrows a storage failure down to its cause.
type Kind string

const (
	KindConstraint   Kind = "constraint"
	KindConnectivity Kind = "connectivity"
	KindUnknown      Kind = "unknown"
)

// StorageError reports a failed persistence operation. Op names the store
// method that failed and Err is the driver or gorm error.
type StorageError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause reach the driver error.
func (e *StorageError) Cause() error {
	return e.Err
}

// MySQL server error numbers.
const (
	mysqlDuplicateEntry     = 1062
	mysqlRowIsReferenced    = 1451
	mysqlNoReferencedRow    = 1452
	mysqlBadNull            = 1048
	mysqlCheckViolated      = 3819
	mysqlTooManyConnections = 1040
	mysqlAccessDenied       = 1045
	mysqlServerShutdown     = 1053
)

func classify(err error) Kind {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return KindConstraint
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, mysql.ErrInvalidConn),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return KindConnectivity
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			return KindConstraint
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrNotADB:
			return KindConnectivity
		}
		return KindUnknown
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlDuplicateEntry, mysqlRowIsReferenced, mysqlNoReferencedRow, mysqlBadNull, mysqlCheckViolated:
			return KindConstraint
		case mysqlTooManyConnections, mysqlAccessDenied, mysqlServerShutdown:
			return KindConnectivity
		}
		return KindUnknown
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindConnectivity
	}
	return KindUnknown
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPlantNotFound) {
		return ErrPlantNotFound
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPlantNotFound
	}
	return &StorageError{Op: op, Kind: classify(err), Err: err}
}
