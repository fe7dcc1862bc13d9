package config

import "testing"

func TestLoadRequiredFields(t *testing.T) {
	t.Setenv("DB_DATABASE", "")
	t.Setenv("DB_USER", "")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("Expected an error when DB_DATABASE is missing")
	}

	t.Setenv("DB_DATABASE", "conduit")
	if _, err := Load(); err == nil {
		t.Error("Expected an error when DB_USER is missing")
	}

	t.Setenv("DB_USER", "conduit_app")
	if _, err := Load(); err == nil {
		t.Error("Expected an error when JWT_SECRET is missing")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected configuration to load, got %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Expected default port 3000, got %s", cfg.Port)
	}
	if cfg.DBType != "mysql" {
		t.Errorf("Expected default DB type mysql, got %s", cfg.DBType)
	}
	if cfg.DBConnectionLimit != 5 {
		t.Errorf("Expected default connection limit 5, got %d", cfg.DBConnectionLimit)
	}
}

func TestLoadSQLiteSkipsUser(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", ":memory:")
	t.Setenv("DB_USER", "")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected sqlite configuration without a user to load, got %v", err)
	}
	if cfg.DBType != "sqlite" {
		t.Errorf("Expected sqlite, got %s", cfg.DBType)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT_VALUE", "42")
	if got := getEnvAsInt("TEST_INT_VALUE", 7); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}

	t.Setenv("TEST_INT_VALUE", "not-a-number")
	if got := getEnvAsInt("TEST_INT_VALUE", 7); got != 7 {
		t.Errorf("Expected fallback 7 for a bad value, got %d", got)
	}

	if got := getEnvAsInt("TEST_INT_UNSET", 7); got != 7 {
		t.Errorf("Expected fallback 7 for an unset value, got %d", got)
	}
}
