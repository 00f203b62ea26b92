package migration

import (
	"database/sql"
	"os"
	"path/filepath"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

// Run applies every pending migration in internal/migration.
func Run(db *sql.DB) {
	wd, err := os.Getwd()
	if err != nil {
		logrus.Fatalf("Error getting working directory: %v", err)
	}

	migrations := &migrate.FileMigrationSource{
		Dir: filepath.Join(wd, "internal/migration"),
	}

	applied, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		logrus.Fatalf("Error applying migrations: %v", err)
	}

	logrus.Printf("Applied %d migrations", applied)
}
