package match

import (
	"fmt"
	"math"
	"testing"

	"dye-atelier/catalog"
	"dye-atelier/colorspace"
)

// testCatalog builds a small catalog from (id, hex, category) triples.
func testCatalog(t *testing.T, entries ...[3]string) *catalog.Catalog {
	t.Helper()
	data := "["
	for i, e := range entries {
		if i > 0 {
			data += ","
		}
		data += fmt.Sprintf(
			`{"id": %s, "externalId": 0, "name": "Dye %s", "hex": "%s", "category": "%s", "acquisition": "vendor", "cost": 0}`,
			e[0], e[0], e[1], e[2])
	}
	data += "]"
	c, err := catalog.Parse([]byte(data))
	if err != nil {
		t.Fatalf("Failed to build test catalog: %v", err)
	}
	return c
}

func primaryCatalog(t *testing.T) *catalog.Catalog {
	return testCatalog(t,
		[3]string{"1", "#FF0000", "Red"},
		[3]string{"2", "#00FF00", "Green"},
		[3]string{"3", "#0000FF", "Blue"},
	)
}

func TestFindClosestSingle(t *testing.T) {
	f := NewFinder(primaryCatalog(t))

	dye, dist, ok := f.FindClosestSingle("#FE0100", nil)
	if !ok {
		t.Fatal("Expected a match")
	}
	if dye.ID != 1 {
		t.Errorf("Expected dye 1 (#FF0000), got dye %d (%s)", dye.ID, dye.Hex)
	}
	expected := math.Sqrt(1 + 1)
	if math.Abs(dist-expected) > colorspace.Epsilon {
		t.Errorf("Expected distance %f, got %f", expected, dist)
	}
}

func TestFindClosestExclusionHonored(t *testing.T) {
	f := NewFinder(primaryCatalog(t))

	// Dye 1 is the true nearest neighbor but must never be returned.
	matches := f.FindClosest("#FE0100", Options{ExcludeIDs: map[int]bool{1: true}})
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	for _, m := range matches {
		if m.Dye.ID == 1 {
			t.Errorf("Excluded dye 1 was returned")
		}
	}

	dye, _, ok := f.FindClosestSingle("#FE0100", map[int]bool{1: true})
	if !ok {
		t.Fatal("Expected a match after exclusion")
	}
	if dye.ID == 1 {
		t.Error("FindClosestSingle returned the excluded dye")
	}
}

func TestFindClosestCategoryExclusion(t *testing.T) {
	f := NewFinder(primaryCatalog(t))

	matches := f.FindClosest("#FF0000", Options{
		ExcludeCategories: map[string]bool{"Red": true},
	})
	for _, m := range matches {
		if m.Dye.Category == "Red" {
			t.Errorf("Excluded category Red was returned (dye %d)", m.Dye.ID)
		}
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 matches, got %d", len(matches))
	}
}

func TestFindClosestLimit(t *testing.T) {
	f := NewFinder(primaryCatalog(t))

	matches := f.FindClosest("#808080", Options{Limit: 2})
	if len(matches) != 2 {
		t.Errorf("Expected limit of 2 to apply, got %d matches", len(matches))
	}

	// Ascending by distance.
	for i := 1; i < len(matches); i++ {
		if matches[i].Distance < matches[i-1].Distance-colorspace.Epsilon {
			t.Errorf("Matches not ascending: %f before %f", matches[i-1].Distance, matches[i].Distance)
		}
	}
}

func TestFindClosestEmptyCandidateSet(t *testing.T) {
	f := NewFinder(primaryCatalog(t))

	matches := f.FindClosest("#FFFFFF", Options{
		ExcludeIDs: map[int]bool{1: true, 2: true, 3: true},
	})
	if len(matches) != 0 {
		t.Errorf("Expected empty result, got %d matches", len(matches))
	}

	if _, _, ok := f.FindClosestSingle("#FFFFFF", map[int]bool{1: true, 2: true, 3: true}); ok {
		t.Error("FindClosestSingle should report no match")
	}
}

func TestFindClosestTieBreaksByLowerID(t *testing.T) {
	// Two dyes equidistant from the target: #000000 and #000002 are both
	// distance 1 from #000001 on the blue axis.
	c := testCatalog(t,
		[3]string{"7", "#000002", "Blue"},
		[3]string{"4", "#000000", "Black"},
	)
	f := NewFinder(c)

	matches := f.FindClosest("#000001", Options{})
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Dye.ID != 4 {
		t.Errorf("Tie should resolve to lower id 4, got %d first", matches[0].Dye.ID)
	}

	dye, _, ok := f.FindClosestSingle("#000001", nil)
	if !ok || dye.ID != 4 {
		t.Errorf("FindClosestSingle tie should resolve to id 4, got %+v", dye)
	}
}

func TestFindClosestPredicateExclusion(t *testing.T) {
	f := NewFinder(primaryCatalog(t))

	matches := f.FindClosest("#FF0000", Options{
		Exclude: func(d catalog.Dye) bool { return d.Hex == "#FF0000" },
	})
	for _, m := range matches {
		if m.Dye.Hex == "#FF0000" {
			t.Error("Predicate-excluded dye was returned")
		}
	}
}

// TestKDTreeAgreesWithLinearScan cross-checks the KD-tree fast path
// against the exhaustive scan over the full embedded catalog.
func TestKDTreeAgreesWithLinearScan(t *testing.T) {
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	f := NewFinder(c)

	targets := []string{
		"#000000", "#FFFFFF", "#FF0000", "#00FF00", "#0000FF",
		"#123456", "#ABCDEF", "#808080", "#E4DCD3", "#7F3F1F",
		"#0E2E4D", "#C8A54C", "#5B1329", "#F0F0F0", "#101010",
	}

	for _, target := range targets {
		fromTree, treeDist, ok := f.FindClosestSingle(target, nil)
		if !ok {
			t.Fatalf("KD-tree found no match for %s", target)
		}
		linear := f.FindClosest(target, Options{Limit: 1})
		if len(linear) != 1 {
			t.Fatalf("Linear scan found no match for %s", target)
		}
		if fromTree.ID != linear[0].Dye.ID {
			t.Errorf("Target %s: tree picked dye %d (%s, d=%f), scan picked dye %d (%s, d=%f)",
				target, fromTree.ID, fromTree.Hex, treeDist,
				linear[0].Dye.ID, linear[0].Dye.Hex, linear[0].Distance)
		}
		if math.Abs(treeDist-linear[0].Distance) > colorspace.Epsilon {
			t.Errorf("Target %s: distance mismatch tree=%f scan=%f", target, treeDist, linear[0].Distance)
		}
	}
}

func TestKDTreeExclusionAgreesWithLinearScan(t *testing.T) {
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	f := NewFinder(c)

	for _, target := range []string{"#E4DCD3", "#112233", "#AA5500"} {
		// Exclude the unrestricted best match and verify both paths agree
		// on the runner-up.
		best, _, ok := f.FindClosestSingle(target, nil)
		if !ok {
			t.Fatalf("No match for %s", target)
		}
		exclude := map[int]bool{best.ID: true}

		fromTree, _, ok := f.FindClosestSingle(target, exclude)
		if !ok {
			t.Fatalf("No runner-up for %s", target)
		}
		if fromTree.ID == best.ID {
			t.Fatalf("Excluded dye %d returned for %s", best.ID, target)
		}
		linear := f.FindClosest(target, Options{ExcludeIDs: exclude, Limit: 1})
		if fromTree.ID != linear[0].Dye.ID {
			t.Errorf("Target %s: tree runner-up %d, scan runner-up %d",
				target, fromTree.ID, linear[0].Dye.ID)
		}
	}
}
