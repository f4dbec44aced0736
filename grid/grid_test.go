package grid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateNestedOrder(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []Point
	}{
		{
			name: "single point",
			cfg:  Config{Lambdas: []int{40}, Taus: []int{10}},
			want: []Point{{Lambda: 40, Tau: 10}},
		},
		{
			name: "tau varies fastest",
			cfg:  Config{Lambdas: []int{40, 80}, Taus: []int{10, 11, 12}},
			want: []Point{
				{Lambda: 40, Tau: 10},
				{Lambda: 40, Tau: 11},
				{Lambda: 40, Tau: 12},
				{Lambda: 80, Tau: 10},
				{Lambda: 80, Tau: 11},
				{Lambda: 80, Tau: 12},
			},
		},
		{
			name: "duplicate values kept",
			cfg:  Config{Lambdas: []int{40}, Taus: []int{10, 10}},
			want: []Point{
				{Lambda: 40, Tau: 10},
				{Lambda: 40, Tau: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.cfg)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Generate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateCount(t *testing.T) {
	cfg := Config{
		Lambdas: []int{1, 2, 3},
		Taus:    []int{10, 20, 30, 40},
	}

	got := Generate(cfg)

	if len(got) != len(cfg.Lambdas)*len(cfg.Taus) {
		t.Errorf("got %d points, want %d",
			len(got), len(cfg.Lambdas)*len(cfg.Taus))
	}
}

func TestPointArgs(t *testing.T) {
	p := Point{Lambda: 40, Tau: 10}

	want := []string{"40", "10"}
	if diff := cmp.Diff(want, p.Args()); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"no lambdas", Config{Taus: []int{10}}, true},
		{"no taus", Config{Lambdas: []int{40}}, true},
		{"empty", Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Config
		wantErr bool
	}{
		{
			name: "explicit values",
			yaml: "lambda:\n  values: [40, 80]\ntau:\n  values: [10]\n",
			want: Config{Lambdas: []int{40, 80}, Taus: []int{10}},
		},
		{
			name: "from to span",
			yaml: "lambda:\n  values: [40]\ntau:\n  from: 10\n  to: 12\n",
			want: Config{Lambdas: []int{40}, Taus: []int{10, 11, 12}},
		},
		{
			name: "single value span",
			yaml: "lambda:\n  values: [40]\ntau:\n  from: 10\n  to: 10\n",
			want: Config{Lambdas: []int{40}, Taus: []int{10}},
		},
		{
			name:    "values and span together",
			yaml:    "lambda:\n  values: [40]\n  from: 1\n  to: 2\ntau:\n  values: [10]\n",
			wantErr: true,
		},
		{
			name:    "span inverted",
			yaml:    "lambda:\n  values: [40]\ntau:\n  from: 12\n  to: 10\n",
			wantErr: true,
		},
		{
			name:    "missing dimension",
			yaml:    "lambda:\n  values: [40]\n",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			yaml:    "lambda: [:::\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "grid.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatalf("write grid file: %v", err)
			}

			got, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}

				return
			}

			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
