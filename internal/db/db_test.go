package db

import (
	"path/filepath"
	"testing"

	"github.com/covertbagel/compendium/internal/config"
)

func TestInit_CreatesDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	version, err := GetUserVersion(database)
	if err != nil {
		t.Fatalf("GetUserVersion failed: %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}
}

func TestInit_Reopen(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	database.Close()

	reopened, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
}

func TestInit_UsesBaseDir(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	var name string
	row := database.QueryRow("SELECT file FROM pragma_database_list WHERE name = 'main'")
	if err := row.Scan(&name); err != nil {
		t.Fatalf("pragma_database_list failed: %v", err)
	}
	if filepath.Dir(name) != tmpDir {
		t.Errorf("database file %q not under %q", name, tmpDir)
	}
}

func TestConfigurePool_ZeroValuesLeaveDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	ConfigurePool(database, nil)
	ConfigurePool(database, &config.Config{})
	ConfigurePool(database, &config.Config{DBMaxOpenConns: 1, DBMaxIdleConns: 1})
}
