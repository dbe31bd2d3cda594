package pipeline

import (
	"reflect"
	"testing"
)

func TestValidateDirection(t *testing.T) {
	tests := []struct {
		dir     string
		wantErr bool
	}{
		{"LR", false},
		{"RL", false},
		{"TB", false},
		{"BT", false},
		{"lr", true}, // case-sensitive
		{"diagonal", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateDirection(tt.dir)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDirection(%q) error = %v, wantErr %v", tt.dir, err, tt.wantErr)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"dot", "svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Empty options should pass: %v", err)
	}

	// Check defaults were set
	if opts.Direction != DefaultDirection {
		t.Errorf("Direction should be %q, got %q", DefaultDirection, opts.Direction)
	}
	if opts.Font != DefaultFont {
		t.Errorf("Font should be %q, got %q", DefaultFont, opts.Font)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatDOT {
		t.Errorf("Formats should default to [dot], got %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsDefaultsPreserveValues(t *testing.T) {
	opts := Options{
		Direction: "TB",
		Font:      "Courier",
		Formats:   []string{"svg", "png"},
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if opts.Direction != "TB" {
		t.Errorf("Direction should stay TB, got %q", opts.Direction)
	}
	if opts.Font != "Courier" {
		t.Errorf("Font should stay Courier, got %q", opts.Font)
	}
	if !reflect.DeepEqual(opts.Formats, []string{"svg", "png"}) {
		t.Errorf("Formats should stay [svg png], got %v", opts.Formats)
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	// Invalid direction
	opts := Options{Direction: "XX"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Invalid direction should fail")
	}

	// Invalid format
	opts = Options{Formats: []string{"bmp"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Invalid format should fail")
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First call should pass: %v", err)
	}
	first := opts.Formats

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second call should pass: %v", err)
	}
	if !reflect.DeepEqual(opts.Formats, first) {
		t.Errorf("Second call changed Formats: %v != %v", opts.Formats, first)
	}
}

func TestRasterFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		want    []string
	}{
		{"dot only", []string{"dot"}, nil},
		{"mixed", []string{"dot", "svg", "png"}, []string{"svg", "png"}},
		{"raster only", []string{"pdf"}, []string{"pdf"}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Formats: tt.formats}
			got := opts.RasterFormats()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RasterFormats() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildOptions(t *testing.T) {
	opts := Options{
		Direction:          "BT",
		Font:               "Arial",
		ShowAttributes:     true,
		ShowRelationLabels: true,
	}

	vo := opts.BuildOptions()
	if vo.Direction != "BT" || vo.Font != "Arial" {
		t.Errorf("BuildOptions lost layout settings: %+v", vo)
	}
	if !vo.ShowAttributes || !vo.ShowRelationLabels {
		t.Errorf("BuildOptions lost label settings: %+v", vo)
	}
}

func TestDOTKeyOptsCarriesStrict(t *testing.T) {
	opts := Options{Direction: "LR", Strict: true}
	ko := opts.DOTKeyOpts()
	if !ko.Strict {
		t.Error("Strict mode must be part of the DOT cache key")
	}
}
