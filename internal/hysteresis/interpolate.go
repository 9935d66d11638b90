package hysteresis

import "github.com/RMahshie/bhloop/pkg/models"

// InterpolateAtX returns y at x0 by linear interpolation over the first segment
// of curve that encloses x0. It returns 0 when no segment encloses x0; use
// LookupAtX to tell that apart from a real zero.
func InterpolateAtX(curve models.BranchCurve, x0 float64) float64 {
	y, _ := LookupAtX(curve, x0)
	return y
}

// InterpolateAtY returns x at y0, the mirror of InterpolateAtX. It returns 0
// when no segment encloses y0.
func InterpolateAtY(curve models.BranchCurve, y0 float64) float64 {
	x, _ := LookupAtY(curve, y0)
	return x
}

// LookupAtX is InterpolateAtX with an explicit found flag
func LookupAtX(curve models.BranchCurve, x0 float64) (float64, bool) {
	return lookup(curve, x0, func(p models.Point) (float64, float64) { return p.X, p.Y })
}

// LookupAtY is InterpolateAtY with an explicit found flag
func LookupAtY(curve models.BranchCurve, y0 float64) (float64, bool) {
	return lookup(curve, y0, func(p models.Point) (float64, float64) { return p.Y, p.X })
}

// lookup scans consecutive pairs for one whose key range encloses k0. Nodes are
// returned exactly; segments with equal keys never enclose anything.
func lookup(curve models.BranchCurve, k0 float64, axes func(models.Point) (key, val float64)) (float64, bool) {
	if len(curve) == 1 {
		if k, v := axes(curve[0]); k == k0 {
			return v, true
		}
		return 0, false
	}

	for i := 1; i < len(curve); i++ {
		k1, v1 := axes(curve[i-1])
		k2, v2 := axes(curve[i])
		if k1 == k2 {
			continue
		}
		if !(k1 <= k0 && k0 <= k2) && !(k2 <= k0 && k0 <= k1) {
			continue
		}
		switch k0 {
		case k1:
			return v1, true
		case k2:
			return v2, true
		}
		t := (k0 - k1) / (k2 - k1)
		return v1 + t*(v2-v1), true
	}
	return 0, false
}
