package postgres

import (
	"fmt"

	"github.com/XSAM/otelsql"
	_ "github.com/lib/pq"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tienda-api/internal/domain"
)

// OpenDB opens an instrumented connection pool and layers GORM on top of it.
// The handle is constructed once at startup and injected; closing the
// underlying *sql.DB is the caller's responsibility.
func OpenDB(user, password, host, port, dbName string) (*gorm.DB, error) {
	sqlDB, err := otelsql.Open("postgres",
		fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbName),
		otelsql.WithAttributes(
			semconv.DBSystemPostgreSQL,
			semconv.DBNameKey.String(dbName),
		),
		otelsql.WithSpanOptions(otelsql.SpanOptions{
			DisableQuery: true,
		}),
	)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate keeps the schema in sync with the domain entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Category{},
		&domain.Product{},
		&domain.ProductImage{},
		&domain.ProductSize{},
		&domain.ProductFeature{},
		&domain.Review{},
		&domain.Order{},
		&domain.OrderLine{},
	)
}
