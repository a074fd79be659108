package settings

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

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
	return &cli.Context{Store: store, Out: &out}, &out
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}
	for _, want := range []string{"Timezone:", "Week Start:      sunday", "Horizon Days:    7", "Palette:         default"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, out := setupTestDB(t)

	cmd := &SettingsCmd{
		Timezone:      strPtr("America/Chicago"),
		WeekStart:     strPtr("Mon"),
		HorizonDays:   intPtr(21),
		HideCompleted: boolPtr(true),
		Palette:       strPtr("#ABC, #123456"),
	}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}
	if !strings.Contains(out.String(), "Settings updated successfully.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if got.Timezone != "America/Chicago" || got.WeekStart != "monday" || got.HorizonDays != 21 || !got.HideCompleted {
		t.Errorf("settings not saved: %+v", got)
	}
	if want := []string{"#aabbcc", "#123456"}; !reflect.DeepEqual(got.Palette, want) {
		t.Errorf("Palette = %v, want %v", got.Palette, want)
	}
}

func TestSettingsCmd_ResetPalette(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&SettingsCmd{Palette: strPtr("#111111")}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&SettingsCmd{Palette: strPtr("default")}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got, _ := ctx.Store.GetSettings()
	if len(got.Palette) != 0 {
		t.Errorf("Palette = %v, want default", got.Palette)
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestSettingsCmd_Validate(t *testing.T) {
	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"bad timezone", SettingsCmd{Timezone: strPtr("Mars/Olympus")}},
		{"bad week start", SettingsCmd{WeekStart: strPtr("someday")}},
		{"zero horizon", SettingsCmd{HorizonDays: intPtr(0)}},
		{"bad palette", SettingsCmd{Palette: strPtr("red,blue")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
