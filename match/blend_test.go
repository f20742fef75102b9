package match

import (
	"testing"

	"dye-atelier/colorspace"
)

func TestBlendMidpoint(t *testing.T) {
	c := testCatalog(t,
		[3]string{"1", "#FF0000", "Red"},
		[3]string{"2", "#0000FF", "Blue"},
		[3]string{"3", "#800080", "Purple"},
		[3]string{"4", "#FFFFFF", "White"},
	)

	a := mustDye(t, c, 1)
	b := mustDye(t, c, 2)

	// Rounded midpoint of pure red and pure blue.
	if got := Blend(a, b); got != "#800080" {
		t.Errorf("Blend(red, blue) = %s, expected #800080", got)
	}
}

func TestBlendCommutative(t *testing.T) {
	c := testCatalog(t,
		[3]string{"1", "#E4DCD3", "White"},
		[3]string{"2", "#2B2923", "Black"},
		[3]string{"3", "#5B7CB2", "Blue"},
	)

	dyes := c.All()
	for i := range dyes {
		for j := range dyes {
			ab := Blend(dyes[i], dyes[j])
			ba := Blend(dyes[j], dyes[i])
			if ab != ba {
				t.Errorf("Blend(%d,%d)=%s != Blend(%d,%d)=%s",
					dyes[i].ID, dyes[j].ID, ab, dyes[j].ID, dyes[i].ID, ba)
			}
		}
	}
}

func TestBlendSelfIsIdentity(t *testing.T) {
	c := testCatalog(t, [3]string{"1", "#ABCDEF", "Blue"})
	d := mustDye(t, c, 1)
	if got := Blend(d, d); got != d.Hex {
		t.Errorf("Blend(d,d) = %s, expected %s", got, d.Hex)
	}
}

func TestMatchBlendExcludesSources(t *testing.T) {
	c := testCatalog(t,
		[3]string{"1", "#FF0000", "Red"},
		[3]string{"2", "#0000FF", "Blue"},
		[3]string{"3", "#800080", "Purple"},
		[3]string{"4", "#FFFFFF", "White"},
	)
	f := NewFinder(c)

	a := mustDye(t, c, 1)
	b := mustDye(t, c, 2)
	blended := Blend(a, b)

	matches := f.MatchBlend(blended, map[int]bool{a.ID: true, b.ID: true}, 10)
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	for _, m := range matches {
		if m.Dye.ID == a.ID || m.Dye.ID == b.ID {
			t.Errorf("Source dye %d returned by MatchBlend", m.Dye.ID)
		}
	}

	// The purple dye is the exact blend, so it ranks first at distance 0.
	if matches[0].Dye.ID != 3 {
		t.Errorf("Expected dye 3 first, got %d", matches[0].Dye.ID)
	}
	if matches[0].Distance > colorspace.Epsilon {
		t.Errorf("Expected zero distance for exact blend, got %f", matches[0].Distance)
	}
}

func TestMatchBlendLimit(t *testing.T) {
	c := testCatalog(t,
		[3]string{"1", "#FF0000", "Red"},
		[3]string{"2", "#0000FF", "Blue"},
		[3]string{"3", "#800080", "Purple"},
		[3]string{"4", "#FFFFFF", "White"},
		[3]string{"5", "#000000", "Black"},
	)
	f := NewFinder(c)

	matches := f.MatchBlend("#800080", map[int]bool{1: true, 2: true}, 2)
	if len(matches) != 2 {
		t.Errorf("Expected limit of 2, got %d matches", len(matches))
	}
}
