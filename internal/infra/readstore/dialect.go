package readstore

import (
	"github.com/doug-martin/goqu/v9"
	// registers the postgres dialect
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

const dialectPostgres = "postgres"

var dialect = goqu.Dialect(dialectPostgres)

const (
	tblBookings = "bookings"
	tblRentals  = "rentals"
)

// toSQL renders a prepared statement so every value travels as a bind parameter.
func toSQL(ds *goqu.SelectDataset) (string, []any, error) {
	return ds.Prepared(true).ToSQL()
}
