package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/kerfcut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// dxfTolerance is the maximum distance between two points considered equal.
const dxfTolerance = 0.01

type point struct{ x, y float64 }

// segment is a line between two points, used for chaining loose LINE
// entities into closed outlines.
type segment struct{ start, end point }

// ImportDXF imports cuts from a DXF drawing. Every closed axis-aligned
// rectangle, drawn as an LWPOLYLINE or as four connected LINEs, becomes a
// cut; rectangles with the same size are merged into one cut with a
// quantity. Other entities are reported as warnings.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]point
	var segments []segment
	skipped := map[string]int{}

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if hasBulge(e.Bulges) {
				skipped["curved LWPOLYLINE"]++
				continue
			}
			pts := make([]point, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				if len(v) >= 2 {
					pts = append(pts, point{v[0], v[1]})
				}
			}
			outlines = append(outlines, pts)
		case *entity.Line:
			segments = append(segments, segment{
				start: point{e.Start[0], e.Start[1]},
				end:   point{e.End[0], e.End[1]},
			})
		case *entity.Circle:
			skipped["CIRCLE"]++
		case *entity.Arc:
			skipped["ARC"]++
		}
	}
	outlines = append(outlines, chainSegments(segments, dxfTolerance)...)

	names := make([]string, 0, len(skipped))
	for name := range skipped {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d %s entities: only rectangular parts are supported", skipped[name], name))
	}

	index := map[[2]float64]int{}
	for _, outline := range outlines {
		length, width, ok := rectangleSize(outline, dxfTolerance)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped closed shape with %d vertices: not an axis-aligned rectangle", len(dedupeClosing(outline, dxfTolerance))))
			continue
		}

		key := [2]float64{roundTo32nd(length), roundTo32nd(width)}
		if i, seen := index[key]; seen {
			result.Cuts[i].Quantity++
			continue
		}
		index[key] = len(result.Cuts)
		label := fmt.Sprintf("DXF Part %d", len(result.Cuts)+1)
		result.Cuts = append(result.Cuts, model.NewCut(label, key[0], key[1], 1, ""))
	}

	if len(result.Cuts) == 0 {
		result.Errors = append(result.Errors, "No rectangular shapes found in DXF file")
	}
	return result
}

func hasBulge(bulges []float64) bool {
	for _, b := range bulges {
		if math.Abs(b) > 1e-9 {
			return true
		}
	}
	return false
}

func roundTo32nd(v float64) float64 {
	return math.Round(v*32) / 32
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= tolerance
}

// dedupeClosing drops a final vertex that repeats the first.
func dedupeClosing(pts []point, tolerance float64) []point {
	if len(pts) > 1 && pointsClose(pts[0], pts[len(pts)-1], tolerance) {
		return pts[:len(pts)-1]
	}
	return pts
}

// rectangleSize reports the height (as length) and width of an outline
// if it is an axis-aligned rectangle.
func rectangleSize(pts []point, tolerance float64) (length, width float64, ok bool) {
	pts = dedupeClosing(pts, tolerance)
	if len(pts) != 4 {
		return 0, 0, false
	}

	for i := range pts {
		a, b := pts[i], pts[(i+1)%4]
		horizontal := math.Abs(a.y-b.y) <= tolerance && math.Abs(a.x-b.x) > tolerance
		vertical := math.Abs(a.x-b.x) <= tolerance && math.Abs(a.y-b.y) > tolerance
		if !horizontal && !vertical {
			return 0, 0, false
		}
		// Consecutive edges must turn.
		c := pts[(i+2)%4]
		nextHorizontal := math.Abs(b.y-c.y) <= tolerance
		if horizontal == nextHorizontal {
			return 0, 0, false
		}
	}

	minX, maxX := pts[0].x, pts[0].x
	minY, maxY := pts[0].y, pts[0].y
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	return maxY - minY, maxX - minX, true
}

// chainSegments connects loose segments into closed outlines. Open chains
// are dropped.
func chainSegments(segs []segment, tolerance float64) [][]point {
	used := make([]bool, len(segs))
	var outlines [][]point

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		chain := []point{segs[start].start, segs[start].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				switch {
				case pointsClose(tail, seg.start, tolerance):
					chain = append(chain, seg.end)
				case pointsClose(tail, seg.end, tolerance):
					chain = append(chain, seg.start)
				default:
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}
