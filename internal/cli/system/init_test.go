package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/coursecal/internal/storage"
)

func TestInitCmd_Success(t *testing.T) {
	ctx, out, dbPath := newTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	if !strings.Contains(out.String(), "Initialized coursecal storage at: "+dbPath) {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, _ := setupTestDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	// Re-running init keeps existing records
	if _, err := ctx.Store.GetCourse("cs101"); err != nil {
		t.Errorf("course lost after re-init: %v", err)
	}
}

func TestInitCmd_Force(t *testing.T) {
	ctx, out, _ := setupTestDB(t)

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted existing database") {
		t.Errorf("expected deletion notice, got %q", out.String())
	}
	if _, err := ctx.Store.GetCourse("cs101"); err == nil {
		t.Error("course survived init --force")
	}
}

func TestInitCmd_ForceJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coursecal.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	ctx, _, _ := newTestContext(t)
	ctx.Store = store

	// Without --force the JSON store refuses to overwrite itself
	if err := (&InitCmd{}).Run(ctx); err == nil {
		t.Error("expected error re-initializing JSON store without --force")
	}
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Errorf("init --force on JSON store failed: %v", err)
	}
}
