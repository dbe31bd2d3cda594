package render

import (
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "svg", want: SVG},
		{in: "PNG", want: PNG},
		{in: ".pdf", want: PDF},
		{in: ".SVG", want: SVG},
		{in: "gif", wantErr: true},
		{in: "", wantErr: true},
		{in: "dot", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatExt(t *testing.T) {
	if got := PNG.Ext(); got != ".png" {
		t.Errorf("Ext() = %q, want .png", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="134pt" height="116pt" viewBox="0.00 0.00 134.00 116.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)

	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 134.00 116.00" width="134" height="116">`
	if !strings.Contains(out, want) {
		t.Errorf("normalizeViewBox() = %s, want tag %s", out, want)
	}
	if strings.Contains(out, "134pt") {
		t.Errorf("original svg tag survived: %s", out)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "no viewBox", in: `<svg width="10" height="10"></svg>`},
		{name: "zero size", in: `<svg viewBox="0.00 0.00 0 116.00"></svg>`},
		{name: "not svg", in: `plain text`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.in {
				t.Errorf("normalizeViewBox() = %q, want input unchanged", got)
			}
		})
	}
}
