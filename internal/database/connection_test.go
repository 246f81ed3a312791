package database

import (
	"strings"
	"testing"
)

func TestPostgresDSN(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      DatabaseConfig
		expected string
	}{
		{
			name: "full settings",
			cfg: DatabaseConfig{
				Driver:   "postgres",
				Host:     "db.internal",
				Port:     "5433",
				User:     "recipes",
				Password: "s3cret",
				Name:     "recipes",
				SSLMode:  "require",
			},
			expected: "host=db.internal port=5433 user=recipes password=s3cret dbname=recipes sslmode=require",
		},
		{
			name: "sslmode defaults to disable",
			cfg: DatabaseConfig{
				Driver:   "postgres",
				Host:     "localhost",
				Port:     "5432",
				User:     "user",
				Password: "password",
				Name:     "recipes",
			},
			expected: "host=localhost port=5432 user=user password=password dbname=recipes sslmode=disable",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if dsn := tt.cfg.postgresDSN(); dsn != tt.expected {
				t.Errorf("postgresDSN() = %q, expected %q", dsn, tt.expected)
			}
		})
	}
}

func TestSqlitePath(t *testing.T) {
	cfg := DatabaseConfig{Driver: "sqlite", Path: "/var/lib/recipes.sqlite"}
	if path := cfg.sqlitePath(); path != "/var/lib/recipes.sqlite" {
		t.Errorf("sqlitePath() = %q, expected configured path", path)
	}

	cfg = DatabaseConfig{Driver: "sqlite"}
	if path := cfg.sqlitePath(); path != "recipes.sqlite" {
		t.Errorf("sqlitePath() = %q, expected default", path)
	}
}

func TestLogFieldsOmitPassword(t *testing.T) {
	cfg := DatabaseConfig{
		Driver:   "postgres",
		Host:     "localhost",
		Password: "s3cret",
		Name:     "recipes",
	}
	for key, value := range cfg.logFields() {
		if s, ok := value.(string); ok && strings.Contains(s, "s3cret") {
			t.Errorf("logFields()[%s] leaks the password", key)
		}
	}
}
