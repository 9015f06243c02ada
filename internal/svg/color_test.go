package svg

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in     string
		want   color.NRGBA
		wantOK bool
	}{
		{"#ff0000", color.NRGBA{R: 0xff, A: 0xff}, true},
		{"#f00", color.NRGBA{R: 0xff, A: 0xff}, true},
		{"#ff000080", color.NRGBA{R: 0xff, A: 0x80}, true},
		{"rgb(255, 0, 0)", color.NRGBA{R: 0xff, A: 0xff}, true},
		{"RGB(255, 0, 0)", color.NRGBA{R: 0xff, A: 0xff}, true},
		{"RGBA(255, 0, 0, 1)", color.NRGBA{R: 0xff, A: 0xff}, true},
		{"rgb(100%, 0%, 0%)", color.NRGBA{R: 0xff, A: 0xff}, true},
		{"rgba(0, 0, 255, 0.5)", color.NRGBA{B: 0xff, A: 0x7f}, true},
		{"red", color.NRGBA{R: 0xff, A: 0xff}, true},
		{"CornflowerBlue", color.NRGBA{R: 0x64, G: 0x95, B: 0xed, A: 0xff}, true},
		{"currentColor", color.NRGBA{A: 0xff}, true},
		{"none", color.NRGBA{}, false},
		{"transparent", color.NRGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, ok, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) failed: %v", tt.in, err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && c != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, c, tt.want)
			}
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"#ff", "#qqqqqq", "rgb(1,2)", "notacolor"} {
		if _, _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) should fail", in)
		}
	}
}

func TestHexColor(t *testing.T) {
	got := HexColor(color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff})
	if got != "#123456" {
		t.Errorf("HexColor = %s, want #123456", got)
	}
}
