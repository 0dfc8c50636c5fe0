package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Applies the pipeline schema (orders, inventory_movements,
// publish_failures) to the target database.
func main() {
	var dsn, migrationsPath string

	flag.StringVar(&dsn, "dsn", "", "postgres dsn, user:password@host:port/dbname?sslmode=disable")
	flag.StringVar(&migrationsPath, "migrations-path", "./migrations", "path to migration files")
	flag.Parse()

	if dsn == "" {
		dsn = os.Getenv("POSTGRES_DSN")
		if dsn == "" {
			panic("postgres dsn is not set")
		}
	}

	m, err := migrate.New(
		"file://"+migrationsPath,
		fmt.Sprintf("postgres://%s", dsn),
	)
	if err != nil {
		panic(err)
	}

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("schema is up to date")
			return
		}
		panic(err)
	}

	fmt.Println("schema migrated")
}
