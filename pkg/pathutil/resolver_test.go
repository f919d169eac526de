package pathutil

import (
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantDB      string
		wantCatalog string
	}{
		{
			name:        "bolt defaults",
			config:      Config{DataRoot: "/data"},
			wantDB:      filepath.Join("/data", "fintrack.db"),
			wantCatalog: filepath.Join("/data", "categories.yaml"),
		},
		{
			name:        "sqlite default",
			config:      Config{DataRoot: "/data", Driver: "sqlite"},
			wantDB:      filepath.Join("/data", "fintrack.sqlite"),
			wantCatalog: filepath.Join("/data", "categories.yaml"),
		},
		{
			name:        "overrides",
			config:      Config{DataRoot: "/data", DatabasePath: "/tmp/x.db", CatalogPath: "/etc/cats.yaml"},
			wantDB:      "/tmp/x.db",
			wantCatalog: "/etc/cats.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.config)
			if got := p.GetDatabasePath(); got != tt.wantDB {
				t.Errorf("GetDatabasePath() = %q, want %q", got, tt.wantDB)
			}
			if got := p.GetCatalogPath(); got != tt.wantCatalog {
				t.Errorf("GetCatalogPath() = %q, want %q", got, tt.wantCatalog)
			}
			if got := p.GetDataRoot(); got != "/data" {
				t.Errorf("GetDataRoot() = %q, want /data", got)
			}
		})
	}
}

func TestGetExportPath(t *testing.T) {
	p := New(Config{DataRoot: "/data"})

	got, err := p.GetExportPath("2024-03-15")
	if err != nil {
		t.Fatalf("GetExportPath() error = %v", err)
	}
	if want := filepath.Join("/data", "exports", "fintrack-2024-03-15.yaml"); got != want {
		t.Errorf("GetExportPath() = %q, want %q", got, want)
	}

	if _, err := p.GetExportPath("2024-3"); err == nil {
		t.Error("GetExportPath() with short date error = nil, want error")
	}
}

func TestEnsureParentDir(t *testing.T) {
	root := t.TempDir()
	p := New(Config{DataRoot: root})
	file := filepath.Join(root, "a", "b", "fintrack.db")

	if err := p.EnsureParentDir(file); err != nil {
		t.Fatalf("EnsureParentDir() error = %v", err)
	}
	if !p.FileExists(filepath.Dir(file)) {
		t.Error("parent directory was not created")
	}
	if p.FileExists(file) {
		t.Error("FileExists() reported a file that was never written")
	}
}

func TestGetMonthFilePath(t *testing.T) {
	p := New(Config{DataRoot: "/data"})

	tests := []struct {
		yearMonth string
		want      string
		wantErr   bool
	}{
		{"2024-01", filepath.Join("/data", "beancount", "2024", "2024-01.beancount"), false},
		{"2024-1", "", true},
		{"202401", "", true},
		{"2024-01-15", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.yearMonth, func(t *testing.T) {
			got, err := p.GetMonthFilePath(tt.yearMonth)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetMonthFilePath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetMonthFilePath() = %q, want %q", got, tt.want)
			}
		})
	}

	if got, want := p.GetMainFilePath(), filepath.Join("/data", "beancount", "main.beancount"); got != want {
		t.Errorf("GetMainFilePath() = %q, want %q", got, want)
	}
	if got, want := p.GetMappingPath(), filepath.Join("/data", "beancount-accounts.yaml"); got != want {
		t.Errorf("GetMappingPath() = %q, want %q", got, want)
	}
}
