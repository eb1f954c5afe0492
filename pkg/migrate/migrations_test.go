package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/greenbasket/farmmarket-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestProductsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_products.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"FOREIGN KEY (farmer_id) REFERENCES users(id) ON DELETE CASCADE",
		"CHECK (price > 0)",
		"CHECK (category IN ('Vegetables', 'Fruits', 'Grains', 'Others'))",
		"DROP TABLE IF EXISTS products",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_orders.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"shipping_address JSONB",
		"DEFAULT 'COD'",
		"DEFAULT 'Pending'",
		"FOREIGN KEY (customer_id) REFERENCES users(id) ON DELETE CASCADE",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrderItemsMigrationCascadesWithOrder(t *testing.T) {
	content := readMigration(t, "*_create_order_items.sql")

	if !strings.Contains(content, "FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE") {
		t.Errorf("order_items must cascade with their order")
	}
	if !strings.Contains(content, "CHECK (quantity > 0)") {
		t.Errorf("missing quantity check")
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %s", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
