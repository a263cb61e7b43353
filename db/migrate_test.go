package db

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationFS_PairsUpAndDown(t *testing.T) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}

	if len(ups) == 0 {
		t.Fatal("expected at least one migration")
	}
	for name := range ups {
		if !downs[name] {
			t.Errorf("migration %s has no down file", name)
		}
	}
}

func TestInitSchema_NamesConstraintsMatchedByErrorMapping(t *testing.T) {
	body, err := fs.ReadFile(migrationFS, "migrations/000001_init_schema.up.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	schema := string(body)

	for _, name := range []string{
		"users_username_key",
		"users_email_key",
		"fk_users_role",
		"doctor_profiles_registration_number_key",
		"fk_doctor_profiles_hospital",
		"patient_profiles_aadhar_number_key",
		"patient_profiles_qr_code_key",
		"idx_health_metrics_day",
		"appointment_status",
	} {
		if !strings.Contains(schema, name) {
			t.Errorf("schema is missing %s", name)
		}
	}
}
