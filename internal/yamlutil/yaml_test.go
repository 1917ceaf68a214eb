package yamlutil_test

// Notes:
// - TestInputSizeLimit modifies the global MaxInputSize and does not run in
//   parallel; no other test in this package is parallel either.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-mdlayout/internal/yamlutil"
)

type testConfig struct {
	Name    string            `yaml:"name"`
	Count   int               `yaml:"count"`
	Enabled bool              `yaml:"enabled"`
	Timeout time.Duration     `yaml:"timeout"`
	Colors  map[string]string `yaml:"colors"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Lenient and strict decoding
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		want       testConfig
		wantErr    error
		wantStrict bool // strict decoding fails
	}{
		{
			name: "all fields",
			data: "name: book\ncount: 3\nenabled: true\ntimeout: 30s\ncolors:\n  keyword: \"#ff0000\"\n",
			want: testConfig{
				Name: "book", Count: 3, Enabled: true, Timeout: 30 * time.Second,
				Colors: map[string]string{"keyword": "#ff0000"},
			},
		},
		{
			name:       "unknown field",
			data:       "name: book\nunknown: 1\n",
			want:       testConfig{Name: "book"},
			wantStrict: true,
		},
		{
			name:    "empty input",
			data:    "",
			wantErr: yamlutil.ErrNilData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got testConfig
			err := yamlutil.Unmarshal([]byte(tt.data), &got)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Unmarshal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
			}

			var strict testConfig
			err = yamlutil.UnmarshalStrict([]byte(tt.data), &strict)
			if tt.wantStrict != (err != nil) {
				t.Errorf("UnmarshalStrict() error = %v, want error %v", err, tt.wantStrict)
			}
		})
	}
}

func TestUnmarshal_NilDestination(t *testing.T) {
	err := yamlutil.Unmarshal([]byte("name: x"), nil)
	if !errors.Is(err, yamlutil.ErrNilDestination) {
		t.Errorf("Unmarshal(nil) error = %v, want ErrNilDestination", err)
	}
}

func TestUnmarshal_SyntaxErrorIsWrapped(t *testing.T) {
	var cfg testConfig
	err := yamlutil.UnmarshalStrict([]byte("name: [unclosed"), &cfg)
	if err == nil || !strings.HasPrefix(err.Error(), "yamlutil: ") {
		t.Errorf("UnmarshalStrict() error = %v, want yamlutil prefix", err)
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Encoding survives a strict decode
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	in := testConfig{Name: "book", Count: 2, Colors: map[string]string{"title": "#000000"}}

	data, err := yamlutil.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "name: book") {
		t.Errorf("Marshal() = %q, want name field", data)
	}

	var out testConfig
	if err := yamlutil.UnmarshalStrict(data, &out); err != nil {
		t.Fatalf("UnmarshalStrict() unexpected error: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("decoded mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestLoadFile - Reading from disk
// ---------------------------------------------------------------------------

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("valid file keeps unset fields", func(t *testing.T) {
		path := write("valid.yaml", "count: 5\n")
		cfg := testConfig{Name: "preset"}
		if err := yamlutil.LoadFile(path, &cfg); err != nil {
			t.Fatalf("LoadFile() unexpected error: %v", err)
		}
		if cfg.Name != "preset" || cfg.Count != 5 {
			t.Errorf("LoadFile() = %+v, want preset name and count 5", cfg)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		var cfg testConfig
		err := yamlutil.LoadFile(filepath.Join(dir, "missing.yaml"), &cfg)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("LoadFile() error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		path := write("unknown.yaml", "nope: true\n")
		var cfg testConfig
		if err := yamlutil.LoadFile(path, &cfg); err == nil {
			t.Error("LoadFile() expected error for unknown field")
		}
	})
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })
	yamlutil.MaxInputSize = 50

	data := make([]byte, 100)
	copy(data, "name: x")

	for name, fn := range map[string]func([]byte, any) error{
		"Unmarshal":       yamlutil.Unmarshal,
		"UnmarshalStrict": yamlutil.UnmarshalStrict,
	} {
		var cfg testConfig
		err := fn(data, &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("%s() error = %v, want ErrInputTooLarge", name, err)
			continue
		}
		if !strings.Contains(err.Error(), "100 bytes") || !strings.Contains(err.Error(), "max 50") {
			t.Errorf("%s() error %q should report both sizes", name, err)
		}
	}

	path := filepath.Join(t.TempDir(), "big.yaml")
	if err := os.WriteFile(path, append([]byte("name: x\n"), make([]byte, 200)...), 0o600); err != nil {
		t.Fatal(err)
	}
	var cfg testConfig
	if err := yamlutil.LoadFile(path, &cfg); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("LoadFile() error = %v, want ErrInputTooLarge", err)
	}
}
