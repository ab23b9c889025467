package geom

import (
	"image"
	"testing"
)

func TestExpandShrink(t *testing.T) {
	m := Margins{Left: 4, Right: 6, Top: 20, Bottom: 2}
	content := image.Rect(100, 100, 300, 200)

	outer := Expand(content, m)
	if want := image.Rect(96, 80, 306, 202); outer != want {
		t.Errorf("Expand(%v, %+v) = %v; want %v", content, m, outer, want)
	}
	if back := Shrink(outer, m); back != content {
		t.Errorf("Shrink(Expand(%v)) = %v; want %v", content, back, content)
	}
	if got := Expand(content, Margins{}); got != content {
		t.Errorf("Expand with zero margins changed %v to %v", content, got)
	}
}

func TestAlignWithGravity(t *testing.T) {
	desired := image.Rect(0, 0, 800, 600)
	actual := image.Rect(0, 0, 780, 580)

	tt := []struct {
		g    Gravity
		want image.Rectangle
	}{
		{GravityTopLeft, image.Rect(0, 0, 780, 580)},
		{GravityTopRight, image.Rect(20, 0, 800, 580)},
		{GravityBottomLeft, image.Rect(0, 20, 780, 600)},
		{GravityBottomRight, image.Rect(20, 20, 800, 600)},
	}
	for _, tc := range tt {
		if got := AlignWithGravity(desired, actual, tc.g); got != tc.want {
			t.Errorf("AlignWithGravity(%v, %v, %v) = %v; want %v", desired, actual, tc.g, got, tc.want)
		}
	}
}

func TestAlignWithGravityGrows(t *testing.T) {
	desired := image.Rect(100, 100, 200, 200)
	actual := image.Rect(7, 7, 157, 157)
	got := AlignWithGravity(desired, actual, GravityBottomRight)
	if want := image.Rect(50, 50, 200, 200); got != want {
		t.Errorf("got %v; want %v", got, want)
	}
}

func TestParseGravity(t *testing.T) {
	tt := []struct {
		s    string
		want Gravity
	}{
		{"", GravityTopLeft},
		{"top-left", GravityTopLeft},
		{"Top-Right", GravityTopRight},
		{" bottom-left ", GravityBottomLeft},
		{"bottom-right", GravityBottomRight},
	}
	for _, tc := range tt {
		g, err := ParseGravity(tc.s)
		if err != nil {
			t.Errorf("ParseGravity(%q) failed: %v", tc.s, err)
			continue
		}
		if g != tc.want {
			t.Errorf("ParseGravity(%q) = %v; want %v", tc.s, g, tc.want)
		}
		if tc.s != "" && g.String() == "" {
			t.Errorf("%v has no name", g)
		}
	}
	if _, err := ParseGravity("middle"); err == nil {
		t.Error("ParseGravity(\"middle\") succeeded; want error")
	}
}
