package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checkzip.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if !slices.Equal(cfg.Extensions, []string{".zip"}) {
		t.Errorf("default extensions = %v, want [.zip]", cfg.Extensions)
	}
	if cfg.Workers != 0 || cfg.HeadersOnly || cfg.Log != "" || len(cfg.Exclude) != 0 {
		t.Errorf("unexpected default %+v", cfg)
	}

	// callers may modify the returned slice
	cfg.Extensions[0] = ".jar"
	if Default().Extensions[0] != ".zip" {
		t.Error("Default shares its extension slice")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Config
	}{
		{
			name: "empty file keeps defaults",
			body: "",
			want: Default(),
		},
		{
			name: "every key",
			body: `
extensions   = [".zip", "jar"]
exclude      = ["node_modules", "backup/old"]
workers      = 8
headers_only = true
log          = "logs/"
`,
			want: Config{
				Extensions:  []string{".zip", "jar"},
				Exclude:     []string{"node_modules", "backup/old"},
				Workers:     8,
				HeadersOnly: true,
				Log:         "logs/",
			},
		},
		{
			name: "partial file keeps other defaults",
			body: "workers = 2\n",
			want: Config{Extensions: []string{".zip"}, Workers: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeConfig(t, tt.body))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !slices.Equal(got.Extensions, tt.want.Extensions) ||
				!slices.Equal(got.Exclude, tt.want.Exclude) ||
				got.Workers != tt.want.Workers ||
				got.HeadersOnly != tt.want.HeadersOnly ||
				got.Log != tt.want.Log {
				t.Errorf("Load = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  error
		contains string
	}{
		{name: "unknown key", body: "threads = 4\n", contains: "threads"},
		{name: "wrong type", body: "workers = \"many\"\n", contains: "parse config"},
		{name: "syntax error", body: "extensions = [\n", contains: "parse config"},
		{name: "negative workers", body: "workers = -1\n", wantErr: ErrInvalidWorkers},
		{name: "blank extension", body: "extensions = [\".\"]\n", wantErr: ErrInvalidExtension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load error = %v, want %v", err, tt.wantErr)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Load error = %q, want it to mention %q", err, tt.contains)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load error = %v, want fs.ErrNotExist", err)
	}
}
