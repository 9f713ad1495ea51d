package mysql

import (
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	"shopservice/pkg/domain/model"
)

// MySQL error numbers for unique and foreign-key constraint violations.
const (
	mysqlErrDuplicateEntry     = 1062
	mysqlErrNoReferencedRowOld = 1216
	mysqlErrRowIsReferencedOld = 1217
	mysqlErrRowIsReferenced    = 1451
	mysqlErrNoReferencedRow    = 1452
)

// translateError maps MySQL constraint violations to ErrStorageConflict so
// callers never see driver-level error codes.
func translateError(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDuplicateEntry,
			mysqlErrNoReferencedRowOld, mysqlErrRowIsReferencedOld,
			mysqlErrRowIsReferenced, mysqlErrNoReferencedRow:
			return model.ErrStorageConflict
		}
	}
	return err
}
