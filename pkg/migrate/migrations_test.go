package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omaralfarsi/fleetledger-backend/pkg/migrate"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestLedgerMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_ledger_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no ledger migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS revenues",
		"CREATE TABLE IF NOT EXISTS expenses",
		"FOREIGN KEY (truck_id) REFERENCES trucks(id) ON DELETE CASCADE",
		"FOREIGN KEY (driver_id) REFERENCES drivers(id) ON DELETE SET NULL",
		"CHECK (amount >= 0)",
		"DROP TABLE IF EXISTS expenses",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestNotificationsMigrationKeepsEnumColumn(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_notifications_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no notifications migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}

	if !strings.Contains(string(data), "notification_type notification_type NOT NULL") {
		t.Errorf("notifications table must use the notification_type enum column")
	}
}
