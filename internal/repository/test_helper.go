package repository

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/acolin/asso-ledger/pkg/pg"
)

type testDB struct {
	*pg.DB
	rawDB *gorm.DB
}

func setupTestDB(t *testing.T) *testDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&ArtistEntity{},
		&ProjectEntity{},
		&ProfileEntity{},
		&InviteEntity{},
		&EntryEntity{},
		&TransferEntity{},
		&InvoiceEntity{},
	)
	require.NoError(t, err)

	return wrapTestDB(db)
}

// setupMigratedDB builds the schema from the SQL migration files instead of
// AutoMigrate, with foreign keys enforced, so tests fail when code disagrees
// with the constraints production runs under. Postgres-only syntax is
// rewritten for sqlite before executing.
func setupMigratedDB(t *testing.T) *testDB {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range migrationStatements(t) {
		require.NoError(t, db.Exec(stmt).Error, stmt)
	}

	return wrapTestDB(db)
}

var sqliteDDL = strings.NewReplacer(
	"BIGSERIAL PRIMARY KEY", "INTEGER PRIMARY KEY AUTOINCREMENT",
	"TIMESTAMPTZ", "DATETIME",
	"DEFAULT now()", "DEFAULT CURRENT_TIMESTAMP",
)

func migrationStatements(t *testing.T) []string {
	files, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	var stmts []string
	for _, f := range files {
		raw, err := os.ReadFile(f)
		require.NoError(t, err)

		up := string(raw)
		if i := strings.Index(up, "-- +goose Down"); i >= 0 {
			up = up[:i]
		}
		var b strings.Builder
		for _, line := range strings.Split(up, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
		for _, stmt := range strings.Split(sqliteDDL.Replace(b.String()), ";") {
			if stmt = strings.TrimSpace(stmt); stmt != "" {
				stmts = append(stmts, stmt)
			}
		}
	}
	return stmts
}

func wrapTestDB(db *gorm.DB) *testDB {
	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return &testDB{
		DB:    pgDB,
		rawDB: db,
	}
}
