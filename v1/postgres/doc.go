// Package postgres wraps a GORM connection to PostgreSQL.
//
// NewPostgres opens a pooled connection through the pgx-based GORM driver.
// FXModule additionally runs a health monitor that pings the database on an
// interval and swaps in a fresh connection when pings fail; callers always get
// the current handle from [Postgres.DB].
//
// Errors coming back from GORM or the driver can be normalized with
// [TranslateError]:
//
//	err := pg.DB().WithContext(ctx).Create(&row).Error
//	if errors.Is(postgres.TranslateError(err), postgres.ErrDuplicateKey) {
//	    // already present
//	}
package postgres
