package gf256

// Point is a single (x, y) sample of a polynomial over GF(256).
type Point struct {
	X byte
	Y byte
}

// EvaluateAt returns the value at x of the unique polynomial of degree
// len(points)-1 passing through points, computed via the standard Lagrange
// interpolation formula. Used both to recover the secret and its digest
// (x = 255 and 254 in package shamir) and to generate additional shares at
// new x coordinates from a set of known points.
//
// If x already equals some point's X, that point's Y is returned directly
// without doing arithmetic — Lagrange interpolation of a polynomial at one
// of its own sample points gives that point's Y anyway. The denominators
// depend only on the points' X values: two points with the same X give a
// zero denominator and Div panics, unless x equals that X, in which case
// the first such point's Y is returned.
func EvaluateAt(points []Point, x byte) byte {
	for _, p := range points {
		if p.X == x {
			return p.Y
		}
	}

	var result byte
	for i, pi := range points {
		num := byte(1)
		den := byte(1)
		for j, pj := range points {
			if i == j {
				continue
			}
			num = Mul(num, Sub(x, pj.X))
			den = Mul(den, Sub(pi.X, pj.X))
		}
		result = Add(result, Mul(pi.Y, Div(num, den)))
	}
	return result
}

// EvaluateVectorAt runs EvaluateAt independently over each byte position of
// a set of equal-length vectors, which is how the splitter interpolates a
// whole share value (many bytes) at once: one independent GF(256)
// polynomial per byte column.
func EvaluateVectorAt(xs []byte, ys [][]byte, x byte) []byte {
	if len(xs) != len(ys) {
		panic("gf256: mismatched point count")
	}
	if len(ys) == 0 {
		return nil
	}
	length := len(ys[0])
	out := make([]byte, length)
	points := make([]Point, len(xs))
	for col := 0; col < length; col++ {
		for i := range xs {
			points[i] = Point{X: xs[i], Y: ys[i][col]}
		}
		out[col] = EvaluateAt(points, x)
	}
	return out
}
