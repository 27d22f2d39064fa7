package backend

import (
	"path/filepath"
	"testing"

	"rentroll/internal/config"
)

func TestType_IsValid(t *testing.T) {
	tests := []struct {
		t    Type
		want bool
	}{
		{MemoryBackend, true},
		{SQLiteBackend, true},
		{Type("postgres"), false},
		{Type(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.t), func(t *testing.T) {
			if got := tt.t.IsValid(); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{DataBackend: "memory"}

	result, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if result.Backend == nil {
		t.Fatal("Open should return a backend")
	}
	if result.Cleanup != nil {
		t.Error("memory backend needs no cleanup")
	}
}

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: filepath.Join(t.TempDir(), "test.db"),
	}

	result, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if result.Cleanup == nil {
		t.Fatal("sqlite backend must expose a cleanup function")
	}
	if err := result.Cleanup(); err != nil {
		t.Errorf("Cleanup error: %v", err)
	}
}

func TestOpen_InvalidType(t *testing.T) {
	cfg := &config.Config{DataBackend: "postgres"}

	if _, err := Open(cfg, nil); err == nil {
		t.Fatal("Open should reject an unknown backend type")
	}
}
