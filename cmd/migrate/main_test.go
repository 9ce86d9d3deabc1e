package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/pingmigrate/internal/config"
	"github.com/JonMunkholm/pingmigrate/internal/store/memory"
)

func TestBuildMigrator(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.yaml")
	body := "dir: exports\nonly: [businesses, offers]\nfiles:\n  offers: Offers.csv\n"
	if err := os.WriteFile(manifestPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		cfg      config.MigrationConfig
		wantDir  string
		wantOnly int
		wantErr  bool
	}{
		{
			name:    "config only",
			cfg:     config.MigrationConfig{Dir: "/data"},
			wantDir: "/data",
		},
		{
			name:     "env subset",
			cfg:      config.MigrationConfig{Dir: ".", Only: []string{"users"}},
			wantDir:  ".",
			wantOnly: 1,
		},
		{
			name:    "unknown env entity",
			cfg:     config.MigrationConfig{Dir: ".", Only: []string{"invoices"}},
			wantErr: true,
		},
		{
			name:     "manifest overrides",
			cfg:      config.MigrationConfig{Dir: "/data", Only: []string{"users"}, Manifest: manifestPath},
			wantDir:  filepath.Join(dir, "exports"),
			wantOnly: 2,
		},
		{
			name:    "missing manifest",
			cfg:     config.MigrationConfig{Dir: ".", Manifest: filepath.Join(dir, "nope.yaml")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := buildMigrator(&config.Config{Migration: tt.cfg})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildMigrator() error = %v", err)
			}
			if m.Dir != tt.wantDir {
				t.Errorf("Dir = %q, want %q", m.Dir, tt.wantDir)
			}
			if len(m.Only) != tt.wantOnly {
				t.Errorf("Only = %v, want %d keys", m.Only, tt.wantOnly)
			}
		})
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, closeFn, err := openStore(ctx, &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}})
		if err != nil {
			t.Fatalf("openStore() error = %v", err)
		}
		defer closeFn()
		if _, ok := s.(*memory.Store); !ok {
			t.Errorf("store = %T, want *memory.Store", s)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{
			Store:  config.StoreConfig{Driver: config.DriverSQLite},
			SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "run.db")},
		}
		_, closeFn, err := openStore(ctx, cfg)
		if err != nil {
			t.Fatalf("openStore() error = %v", err)
		}
		closeFn()
	})

	t.Run("rest", func(t *testing.T) {
		cfg := &config.Config{Store: config.StoreConfig{
			Driver:      config.DriverREST,
			SupabaseURL: "https://example.supabase.co",
			SupabaseKey: "service-key",
		}}
		if _, closeFn, err := openStore(ctx, cfg); err != nil {
			t.Fatalf("openStore() error = %v", err)
		} else {
			closeFn()
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, closeFn, err := openStore(ctx, &config.Config{Store: config.StoreConfig{Driver: "mongo"}})
		if err == nil {
			t.Fatal("expected error")
		}
		if closeFn == nil {
			t.Error("close func is nil")
		}
	})
}
