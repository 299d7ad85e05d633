package pipeline

import (
	"testing"

	"github.com/matzehuels/gradletree/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"yaml", false},
		{"gradle", false},
		{"graph", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", opts.Format, DefaultFormat)
	}
	if opts.Source == "" || opts.Logger == nil {
		t.Error("Source and Logger should be defaulted")
	}

	bad := Options{Configurations: []string{"runtime Classpath"}}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
		t.Errorf("invalid configuration name: err = %v", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	text := Options{Format: FormatText, Flat: true, Detailed: true}.ArtifactKeyOpts()
	if text.Flat || text.Detailed {
		t.Error("Flat and Detailed must not affect non-diagram keys")
	}
	svg := Options{Format: FormatSVG, Flat: true}.ArtifactKeyOpts()
	if !svg.Flat {
		t.Error("Flat must be part of diagram keys")
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		FormatSVG:  "image/svg+xml",
		FormatPNG:  "image/png",
		FormatJSON: "application/json",
		FormatText: "text/plain; charset=utf-8",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%s) = %q, want %q", format, got, want)
		}
	}
	if !IsBinary(FormatPNG) || IsBinary(FormatSVG) {
		t.Error("IsBinary mismatch")
	}
}
