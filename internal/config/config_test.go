package config

import (
	"errors"
	"flag"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestRegisterFlags(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	err := fs.Parse([]string{"-addr", "127.0.0.1:9000", "-data", "", "-depth", "2", "-think", "1500ms", "-vcf", "0", "-open=false"})
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Addr:          "127.0.0.1:9000",
		WebDir:        "./web",
		DataDir:       "",
		EngineDepth:   2,
		EngineTimeout: 1500 * time.Millisecond,
		VCFDepth:      0,
		OpenBrowser:   false,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"zero depth", func(c *Config) { c.EngineDepth = 0 }},
		{"deep search", func(c *Config) { c.EngineDepth = 9 }},
		{"negative vcf", func(c *Config) { c.VCFDepth = -1 }},
		{"no timeout", func(c *Config) { c.EngineTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mod(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
