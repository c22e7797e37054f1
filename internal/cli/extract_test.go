package cli

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avatint/avatint/internal/colour"
)

// writeSolidPNG writes a solid-colour PNG and returns its path.
func writeSolidPNG(t *testing.T, c color.RGBA) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "avatar.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestExtractCommandJSON(t *testing.T) {
	avatar := writeSolidPNG(t, color.RGBA{R: 255, A: 255})
	out := filepath.Join(t.TempDir(), "swatch.json")

	t.Cleanup(func() {
		extractFormat = "hex"
		extractOutput = ""
	})

	rootCmd.SetArgs([]string{"extract", "--format", "json", "--output", out, avatar})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	var decoded struct {
		Primary struct {
			Hex string `json:"hex"`
		} `json:"primary"`
		Secondary struct {
			Hex string `json:"hex"`
		} `json:"secondary"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Primary.Hex != decoded.Secondary.Hex {
		t.Errorf("solid image should yield equal pair, got (%s, %s)",
			decoded.Primary.Hex, decoded.Secondary.Hex)
	}
}

func TestExtractCommandRejectsBadMode(t *testing.T) {
	avatar := writeSolidPNG(t, color.RGBA{G: 255, A: 255})

	rootCmd.SetArgs([]string{"extract", "--mode", "triple", avatar})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for unknown mode")
	}
	// Restore the default for subsequent tests.
	extractMode = "dual"
}

func TestExtractCommandMissingFile(t *testing.T) {
	rootCmd.SetArgs([]string{"extract", "/nonexistent/avatar.png"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatSwatch(t *testing.T) {
	swatch := colour.Swatch{Primary: 0xFF0000, Secondary: 0x0000FF}

	tests := []struct {
		name    string
		mode    colour.Mode
		format  string
		want    []string
		wantErr bool
	}{
		{name: "hex single", mode: colour.ModeSingle, format: "hex", want: []string{"#ff0000"}},
		{name: "hex dual", mode: colour.ModeDual, format: "hex", want: []string{"#ff0000", "#0000ff"}},
		{name: "rgb dual", mode: colour.ModeDual, format: "rgb", want: []string{"rgb(255, 0, 0)", "rgb(0, 0, 255)"}},
		{name: "json", mode: colour.ModeDual, format: "json", want: []string{`"hex": "#ff0000"`}},
		{name: "unknown format", mode: colour.ModeDual, format: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatSwatch(swatch, tt.mode, tt.format, false)
			if (err != nil) != tt.wantErr {
				t.Fatalf("formatSwatch() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output %q missing %q", got, want)
				}
			}
		})
	}
}
