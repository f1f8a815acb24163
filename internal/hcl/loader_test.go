package hcl

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write manifest file: %v", err)
	}
	return path
}

func TestLoad_SingleManifest(t *testing.T) {
	manifest := `
		module "database" {
			handler     = "InitDatabase"
			required    = true
			priority    = 10
			timeout     = "5s"
			max_retries = 3
			retry_delay = "100ms"
			depends_on  = ["config"]

			settings {
				dsn = "postgres://localhost/app"
			}
		}

		module "banner" {
			handler = "InitPrint"
		}
	`
	path := writeManifest(t, t.TempDir(), "boot.hcl", manifest)

	model, err := NewLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load returned an unexpected error: %v", err)
	}
	if len(model.Modules) != 2 {
		t.Fatalf("loaded %d modules, want 2", len(model.Modules))
	}

	db := model.Modules[0]
	if db.Name != "database" || db.Handler != "InitDatabase" {
		t.Errorf("unexpected module identity: %+v", db)
	}
	if !db.Required || db.Priority != 10 || db.MaxRetries != 3 {
		t.Errorf("unexpected module policy: %+v", db)
	}
	if db.Timeout != 5*time.Second || db.RetryDelay != 100*time.Millisecond {
		t.Errorf("unexpected durations: timeout=%v retry_delay=%v", db.Timeout, db.RetryDelay)
	}
	if !reflect.DeepEqual(db.DependsOn, []string{"config"}) {
		t.Errorf("depends_on = %v, want [config]", db.DependsOn)
	}
	if db.Settings == nil {
		t.Error("settings block was dropped")
	}

	banner := model.Modules[1]
	if banner.Required || banner.Timeout != 0 || banner.Settings != nil {
		t.Errorf("optional fields should stay zero: %+v", banner)
	}
}

func TestLoad_DirectoryMergesFiles(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "one.hcl", `
		module "a" { handler = "InitA" }
	`)
	writeManifest(t, dir, "two.hcl", `
		module "b" { handler = "InitB" }
	`)

	model, err := NewLoader().Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load returned an unexpected error: %v", err)
	}
	if len(model.Modules) != 2 {
		t.Fatalf("loaded %d modules, want 2", len(model.Modules))
	}
}

func TestLoad_DuplicateModuleOverwritten(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "a_first.hcl", `
		module "cache" {
			handler  = "InitA"
			priority = 1
		}
	`)
	writeManifest(t, dir, "b_second.hcl", `
		module "cache" {
			handler  = "InitB"
			priority = 2
		}
	`)

	model, err := NewLoader().Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load returned an unexpected error: %v", err)
	}
	if len(model.Modules) != 1 {
		t.Fatalf("loaded %d modules, want 1 after overwrite", len(model.Modules))
	}
	if model.Modules[0].Handler != "InitB" {
		t.Errorf("handler = %q, want the later definition InitB", model.Modules[0].Handler)
	}
}

func TestLoad_InvalidDurationRejected(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "bad.hcl", `
		module "m" {
			handler = "InitM"
			timeout = "not-a-duration"
		}
	`)

	if _, err := NewLoader().Load(context.Background(), path); err == nil {
		t.Fatal("expected an error for an invalid duration")
	}
}

func TestLoad_MissingHandlerRejected(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "bad.hcl", `
		module "m" {
			priority = 1
		}
	`)

	if _, err := NewLoader().Load(context.Background(), path); err == nil {
		t.Fatal("expected an error for a module without a handler")
	}
}

func TestLoad_EmptyDirectoryGivesEmptyModel(t *testing.T) {
	model, err := NewLoader().Load(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Load returned an unexpected error: %v", err)
	}
	if len(model.Modules) != 0 {
		t.Errorf("expected an empty model, got %d modules", len(model.Modules))
	}
}
