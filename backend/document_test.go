package backend

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatFor(t *testing.T) {
	type testcase struct {
		path     string
		expected Format
		err      error
	}
	for _, tc := range []testcase{
		{path: "a.toml", expected: FormatTOML},
		{path: "dir/a.YAML", expected: FormatYAML},
		{path: "a.yml", expected: FormatYAML},
		{path: "a.csv", err: ErrUnknownFormat},
	} {
		t.Run(tc.path, func(t *testing.T) {
			got, err := FormatFor(tc.path)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
			if err == nil && got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestDecodeEquivalent(t *testing.T) {
	fromTOML, err := Decode(strings.NewReader(`
layout = [["y", "area"], ["", "x"]]
margin = 5
[x]
kind = "time"
nice = 4
[[axis]]
cell = "x"
location = "bottom"
zoom = true
`), FormatTOML)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	fromYAML, err := Decode(strings.NewReader(`
layout: [[y, area], ["", x]]
margin: 5
x:
  kind: time
  nice: 4
axis:
  - cell: x
    location: bottom
    zoom: true
`), FormatYAML)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, doc := range []*Document{fromTOML, fromYAML} {
		if len(doc.Layout) != 2 || doc.Layout[1][1] != "x" {
			t.Errorf("expected layout, got %v", doc.Layout)
		}
		if doc.Margin == nil || *doc.Margin != 5 {
			t.Errorf("expected margin 5, got %v", doc.Margin)
		}
		if doc.X.Kind != "time" || doc.X.Nice != 4 {
			t.Errorf("expected time x nice 4, got %+v", doc.X)
		}
		if len(doc.Axes) != 1 || !doc.Axes[0].Zoom {
			t.Errorf("expected a zoomable axis, got %+v", doc.Axes)
		}
	}
}

func TestSniff(t *testing.T) {
	doc, err := Sniff(strings.NewReader("title: yaml only\nlayout: [[a]]\n"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if doc.Title != "yaml only" {
		t.Errorf("expected %q, got %q", "yaml only", doc.Title)
	}
	if _, err := Sniff(strings.NewReader("layout: [[a]")); err == nil {
		t.Errorf("expected an error for malformed input")
	}
}
