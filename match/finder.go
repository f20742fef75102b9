// Package match implements nearest-dye search, color interpolation and
// blending over a catalog snapshot. Every operation is a pure function of
// its inputs and the read-only catalog, so a Finder is safe for
// concurrent use.
package match

import (
	"math"
	"sort"

	"dye-atelier/catalog"
	"dye-atelier/colorspace"
)

// Match pairs a catalog dye with its distance to a query color.
type Match struct {
	Dye      catalog.Dye `json:"dye"`
	Distance float64     `json:"distance"`
}

// Options narrows a FindClosest query. The zero value matches the whole
// catalog with no limit.
type Options struct {
	// ExcludeIDs removes specific dyes from consideration.
	ExcludeIDs map[int]bool
	// ExcludeCategories removes whole categories (case-sensitive).
	ExcludeCategories map[string]bool
	// Exclude is an optional injected predicate; a dye for which it
	// returns true is never returned. It must be cheap and side-effect
	// free.
	Exclude func(catalog.Dye) bool
	// Limit caps the number of results. Zero or negative means no cap.
	Limit int
}

func (o Options) excludes(dye catalog.Dye) bool {
	if o.ExcludeIDs != nil && o.ExcludeIDs[dye.ID] {
		return true
	}
	if o.ExcludeCategories != nil && o.ExcludeCategories[dye.Category] {
		return true
	}
	if o.Exclude != nil && o.Exclude(dye) {
		return true
	}
	return false
}

// Finder answers nearest-dye queries against one catalog snapshot.
type Finder struct {
	dyes []catalog.Dye
	tree *dyeNode
}

// NewFinder builds a Finder over the given catalog. The KD-tree is only
// used for unrestricted or ID-excluded top-1 lookups; everything else is
// a linear scan, which is plenty for a catalog of a few hundred dyes.
func NewFinder(c *catalog.Catalog) *Finder {
	dyes := c.All()
	indices := make([]int, len(dyes))
	for i := range indices {
		indices[i] = i
	}
	maxDepth := int(math.Log2(float64(len(dyes)))) + 2
	return &Finder{
		dyes: dyes,
		tree: buildKDTree(dyes, indices, 0, maxDepth),
	}
}

// FindClosest returns up to opts.Limit dyes nearest to targetHex,
// ascending by distance. When two dyes are equally distant within
// epsilon, the lower ID sorts first. An empty candidate set yields an
// empty (nil) result, not an error.
func (f *Finder) FindClosest(targetHex string, opts Options) []Match {
	target := colorspace.HexToRGB(targetHex)

	var matches []Match
	for _, dye := range f.dyes {
		if opts.excludes(dye) {
			continue
		}
		matches = append(matches, Match{
			Dye:      dye,
			Distance: rgbDistance(dye.RGB, target),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if math.Abs(matches[i].Distance-matches[j].Distance) < colorspace.Epsilon {
			return matches[i].Dye.ID < matches[j].Dye.ID
		}
		return matches[i].Distance < matches[j].Distance
	})

	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	return matches
}

// FindClosestSingle returns the single nearest dye to targetHex after
// removing excludeIDs, or false when no candidate remains. This is the
// hot path of the interpolation engine and goes through the KD-tree.
func (f *Finder) FindClosestSingle(targetHex string, excludeIDs map[int]bool) (*catalog.Dye, float64, bool) {
	return f.findClosestRGB(colorspace.HexToRGB(targetHex), excludeIDs)
}

func (f *Finder) findClosestRGB(target colorspace.RGB, excludeIDs map[int]bool) (*catalog.Dye, float64, bool) {
	var skip func(int) bool
	if len(excludeIDs) > 0 {
		skip = func(idx int) bool { return excludeIDs[f.dyes[idx].ID] }
	}

	bestIdx, bestDist := f.tree.nearestNeighbor(f.dyes, target, -1, math.MaxFloat64, 0, skip)
	if bestIdx < 0 {
		return nil, 0, false
	}
	return &f.dyes[bestIdx], bestDist, true
}

// findClosestFiltered is the fallback for queries with an injected
// predicate: a direct scan of the filtered candidate set for the
// minimum-distance dye, still honoring all exclusions.
func (f *Finder) findClosestFiltered(target colorspace.RGB, opts Options) (*catalog.Dye, float64, bool) {
	bestIdx := -1
	bestDist := math.MaxFloat64
	for i, dye := range f.dyes {
		if opts.excludes(dye) {
			continue
		}
		dist := rgbDistance(dye.RGB, target)
		if dist < bestDist-colorspace.Epsilon ||
			(math.Abs(dist-bestDist) <= colorspace.Epsilon && bestIdx >= 0 && dye.ID < f.dyes[bestIdx].ID) {
			bestIdx = i
			bestDist = math.Min(bestDist, dist)
		}
	}
	if bestIdx < 0 {
		return nil, 0, false
	}
	return &f.dyes[bestIdx], bestDist, true
}
