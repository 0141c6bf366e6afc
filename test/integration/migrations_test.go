package integration

import (
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/linkhive/media-pipeline-go/internal/migration"
	"github.com/linkhive/media-pipeline-go/test/testutil"
)

func TestMigrateUpIntegration(t *testing.T) {
	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	defer testDB.Cleanup()

	db := testDB.DB

	if err := migration.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	// the descriptor table must exist and be empty
	recs := 0
	err = db.QueryRow("SELECT COUNT(*) FROM media_descriptors").Scan(&recs)
	if err != nil {
		t.Fatalf("failed to query migrated table: %v", err)
	}
	if recs != 0 {
		t.Errorf("expected 0 rows in media_descriptors after migration, got %d", recs)
	}

	// running it again must be a no-op, not an error
	if err := migration.MigrateUp(db); err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}
}
