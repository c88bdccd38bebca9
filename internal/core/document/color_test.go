package document

import "testing"

func TestRGBAOver(t *testing.T) {
	opaqueRed := RGBA{R: 255, A: 255}
	black := RGBA{A: 255}

	if got := opaqueRed.Over(black); got != opaqueRed {
		t.Errorf("opaque over opaque = %+v, want the source", got)
	}

	halfRed := RGBA{R: 255, A: 128}
	got := halfRed.Over(black)
	if got.A != 255 {
		t.Errorf("alpha = %d, want 255 over an opaque backdrop", got.A)
	}
	if got.R != 128 || got.G != 0 || got.B != 0 {
		t.Errorf("got %+v, want half-intensity red", got)
	}

	// Fully transparent source leaves the backdrop alone.
	clear := RGBA{R: 255, G: 255, B: 255, A: 0}
	if got := clear.Over(black); got != black {
		t.Errorf("transparent over = %+v, want backdrop", got)
	}

	// Both transparent composes to nothing.
	if got := (RGBA{}).Over(RGBA{}); got != (RGBA{}) {
		t.Errorf("empty over empty = %+v", got)
	}
}

func TestRGBAOverIsOrderSensitive(t *testing.T) {
	a := RGBA{R: 255, A: 128}
	b := RGBA{B: 255, A: 128}
	base := RGBA{A: 255}
	if a.Over(b.Over(base)) == b.Over(a.Over(base)) {
		t.Error("translucent compositing should depend on order")
	}
}

func TestReadableTextColor(t *testing.T) {
	tests := []struct {
		name     string
		bg       RGBA
		wantDark bool
	}{
		{"white", RGBA{R: 255, G: 255, B: 255, A: 255}, true},
		{"black", RGBA{A: 255}, false},
		{"yellow", RGBA{R: 255, G: 255, A: 255}, true},
		{"navy", RGBA{B: 128, A: 255}, false},
		// Pure green sits just under the threshold with these coefficients.
		{"pure green", RGBA{G: 255, A: 255}, false},
		{"pure blue", RGBA{B: 255, A: 255}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.bg.ReadableTextColor()
			dark := got.Luminance() < 128
			if dark != tt.wantDark {
				t.Errorf("text on %+v = %+v", tt.bg, got)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGBA
		wantErr bool
	}{
		{"#FF8000", RGBA{R: 255, G: 128, B: 0, A: 255}, false},
		{"#ff8000", RGBA{R: 255, G: 128, B: 0, A: 255}, false},
		{"#FF800080", RGBA{R: 255, G: 128, B: 0, A: 128}, false},
		{"FF8000", RGBA{}, true},
		{"#FFF", RGBA{}, true},
		{"", RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHex(%q) = %+v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHex(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := RGBA{R: 18, G: 52, B: 86, A: 255}
	if got := c.Hex(); got != "#123456" {
		t.Fatalf("Hex = %q", got)
	}
	back, err := ParseHex(c.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if back != c {
		t.Errorf("round trip = %+v", back)
	}
}

func TestRandomTagColorIsOpaqueAndVisible(t *testing.T) {
	for i := 0; i < 100; i++ {
		c := RandomTagColor()
		if c.A != 255 {
			t.Fatalf("alpha = %d", c.A)
		}
		// Lightness is bounded away from the extremes, so neither text color
		// choice ever fully vanishes against it.
		if c.Luminance() < 40 || c.Luminance() > 240 {
			t.Fatalf("luminance %f out of the generated band for %+v", c.Luminance(), c)
		}
	}
}
