package match

import (
	"math"
	"sort"

	"dye-atelier/catalog"
	"dye-atelier/colorspace"
)

// dyeNode is a node in a KD-tree over the catalog's RGB values. Each node
// holds an index into the finder's dye slice and the axis along which its
// subtree is split.
type dyeNode struct {
	index       int
	left, right *dyeNode
	splitAxis   int
}

// buildKDTree constructs a KD-tree over the given dye indices. The slice
// is reordered in place while the tree is built.
func buildKDTree(dyes []catalog.Dye, indices []int, depth, maxDepth int) *dyeNode {
	if len(indices) == 0 || depth >= maxDepth {
		return nil
	}

	// Split along the dimension with the largest variance.
	axis := chooseSplitAxis(dyes, indices)

	sort.Slice(indices, func(i, j int) bool {
		ci := colorComponent(dyes[indices[i]].RGB, axis)
		cj := colorComponent(dyes[indices[j]].RGB, axis)
		if ci != cj {
			return ci < cj
		}
		return dyes[indices[i]].ID < dyes[indices[j]].ID
	})

	median := len(indices) / 2
	return &dyeNode{
		index:     indices[median],
		left:      buildKDTree(dyes, indices[:median], depth+1, maxDepth),
		right:     buildKDTree(dyes, indices[median+1:], depth+1, maxDepth),
		splitAxis: axis,
	}
}

// chooseSplitAxis returns the RGB axis with the largest variance across
// the given dye indices.
func chooseSplitAxis(dyes []catalog.Dye, indices []int) int {
	var meanR, meanG, meanB float64
	for _, idx := range indices {
		c := dyes[idx].RGB
		meanR += float64(c.R)
		meanG += float64(c.G)
		meanB += float64(c.B)
	}
	n := float64(len(indices))
	meanR /= n
	meanG /= n
	meanB /= n

	var varR, varG, varB float64
	for _, idx := range indices {
		c := dyes[idx].RGB
		varR += (float64(c.R) - meanR) * (float64(c.R) - meanR)
		varG += (float64(c.G) - meanG) * (float64(c.G) - meanG)
		varB += (float64(c.B) - meanB) * (float64(c.B) - meanB)
	}

	if varR > varG && varR > varB {
		return 0
	} else if varG > varB {
		return 1
	}
	return 2
}

func colorComponent(c colorspace.RGB, axis int) uint8 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// nearestNeighbor finds the dye nearest to target, skipping any index for
// which skip returns true. Ties within epsilon resolve to the lower dye
// ID so results stay deterministic. Returns -1 when every node is
// skipped.
func (node *dyeNode) nearestNeighbor(
	dyes []catalog.Dye, target colorspace.RGB,
	bestIdx int, bestDist float64, depth int,
	skip func(int) bool,
) (int, float64) {
	if node == nil {
		return bestIdx, bestDist
	}

	if skip == nil || !skip(node.index) {
		dist := rgbDistance(dyes[node.index].RGB, target)
		if dist < bestDist-colorspace.Epsilon {
			bestIdx = node.index
			bestDist = dist
		} else if math.Abs(dist-bestDist) <= colorspace.Epsilon &&
			(bestIdx < 0 || dyes[node.index].ID < dyes[bestIdx].ID) {
			bestIdx = node.index
			bestDist = math.Min(bestDist, dist)
		}
	}

	axis := node.splitAxis
	targetComp := float64(colorComponent(target, axis))
	nodeComp := float64(colorComponent(dyes[node.index].RGB, axis))

	var next, other *dyeNode
	if targetComp < nodeComp {
		next, other = node.left, node.right
	} else {
		next, other = node.right, node.left
	}

	bestIdx, bestDist = next.nearestNeighbor(dyes, target, bestIdx, bestDist, depth+1, skip)

	// The other branch can only matter when the splitting plane is closer
	// than the best match so far (or nothing has been found yet).
	axisDistance := targetComp - nodeComp
	if bestIdx < 0 || axisDistance*axisDistance < bestDist*bestDist+colorspace.Epsilon {
		bestIdx, bestDist = other.nearestNeighbor(dyes, target, bestIdx, bestDist, depth+1, skip)
	}

	return bestIdx, bestDist
}

// rgbDistance is Euclidean distance between two already-parsed RGB
// values, matching colorspace.MethodRGB without re-parsing hex strings.
func rgbDistance(a, b colorspace.RGB) float64 {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return math.Sqrt(float64(dr*dr + dg*dg + db*db))
}
