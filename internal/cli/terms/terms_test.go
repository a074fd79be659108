package terms

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	var out bytes.Buffer
	return &cli.Context{
		Store: store,
		Now:   func() time.Time { return time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC) },
		Out:   &out,
	}, &out
}

func TestTermAddCmd_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     TermAddCmd
		wantErr bool
	}{
		{"valid", TermAddCmd{Name: "Fall", Start: "2025-09-01", End: "2025-12-12"}, false},
		{"single day", TermAddCmd{Name: "Intensive", Start: "2025-09-01", End: "2025-09-01"}, false},
		{"bad start", TermAddCmd{Name: "Fall", Start: "09/01/2025", End: "2025-12-12"}, true},
		{"bad end", TermAddCmd{Name: "Fall", Start: "2025-09-01", End: "2025-13-01"}, true},
		{"inverted", TermAddCmd{Name: "Fall", Start: "2025-12-12", End: "2025-09-01"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTermLifecycle(t *testing.T) {
	ctx, out := setupTestDB(t)

	add := &TermAddCmd{Name: "Fall 2025", Start: "2025-09-01", End: "2025-12-12", ID: "fall"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := (&TermAddCmd{Name: "Spring 2026", Start: "2026-01-12", End: "2026-05-01"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	out.Reset()
	if err := (&TermListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "* Fall 2025") {
		t.Errorf("active term not marked:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Spring 2026") {
		t.Errorf("second term missing:\n%s", out.String())
	}

	if err := (&TermDeleteCmd{ID: "fall"}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	err := (&TermDeleteCmd{ID: "fall"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "term not found") {
		t.Errorf("second delete error = %v, want not found", err)
	}
}

func TestTermListEmpty(t *testing.T) {
	ctx, out := setupTestDB(t)
	if err := (&TermListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "No terms found" {
		t.Errorf("output = %q", out.String())
	}
}
