package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hardikraval/medlocate-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestPharmaciesMigrationContainsGeography(t *testing.T) {
	content := readMigration(t, "*_create_pharmacies_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS pharmacies",
		"location geography(Point,4326)",
		"USING GIST (location)",
		"FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS pharmacies",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestInventoryMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_inventory_listings_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS inventory_listings",
		"FOREIGN KEY (pharmacy_id) REFERENCES pharmacies(id) ON DELETE CASCADE",
		"FOREIGN KEY (medicine_id) REFERENCES medicines(id) ON DELETE CASCADE",
		"UNIQUE (pharmacy_id, medicine_id)",
		"CHECK (stock >= 0)",
		"WHERE stock > 0",
		"DROP TABLE IF EXISTS inventory_listings",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMedicinesMigrationContainsIdentityIndex(t *testing.T) {
	content := readMigration(t, "*_create_medicines_table.sql")

	checks := []string{
		"CREATE TYPE medicine_form AS ENUM",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_medicines_identity",
		"lower(coalesce(brand, ''))",
		"DROP TABLE IF EXISTS medicines",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir should validate: %v", err)
	}
}
