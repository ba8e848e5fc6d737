package highlight

import "github.com/alecthomas/chroma/v2"

var cubeLevels = [6]int{0, 95, 135, 175, 215, 255}

// Nearest256 returns the xterm 256-colour index closest to c, searching the
// 6x6x6 colour cube and the grey ramp.
func Nearest256(c chroma.Colour) int {
	r, g, b := int(c.Red()), int(c.Green()), int(c.Blue())

	ri, gi, bi := nearestLevel(r), nearestLevel(g), nearestLevel(b)
	cube := 16 + 36*ri + 6*gi + bi
	cubeDist := dist(r, g, b, cubeLevels[ri], cubeLevels[gi], cubeLevels[bi])

	avg := (r + g + b) / 3
	grey := min(max((avg-8+5)/10, 0), 23)
	gv := 8 + 10*grey
	greyDist := dist(r, g, b, gv, gv, gv)

	if greyDist < cubeDist {
		return 232 + grey
	}
	return cube
}

func nearestLevel(v int) int {
	best, bestDiff := 0, 256
	for i, level := range cubeLevels {
		d := v - level
		if d < 0 {
			d = -d
		}
		if d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best
}

func dist(r1, g1, b1, r2, g2, b2 int) int {
	dr, dg, db := r1-r2, g1-g2, b1-b2
	return dr*dr + dg*dg + db*db
}
