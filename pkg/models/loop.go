package models

// Direction tells which way the independent axis was moving when a scatter point was taken
type Direction string

const (
	Rising  Direction = "rising"
	Falling Direction = "falling"
)

// Point is a single (x, y) pair of a curve
type Point struct {
	X float64 `json:"x" doc:"Independent axis value"`
	Y float64 `json:"y" doc:"Dependent axis value"`
}

// ScatterPoint is a decimated sample tagged with its direction of travel
type ScatterPoint struct {
	X         float64   `json:"x" doc:"Independent axis value"`
	Y         float64   `json:"y" doc:"Dependent axis value"`
	Direction Direction `json:"direction" enum:"rising,falling" doc:"Direction of travel along x (rising or falling)"`
}

// BranchCurve is one half of a hysteresis loop, one averaged point per occupied bin.
// X is strictly increasing.
type BranchCurve []Point

// LoopResult holds the reconstructed loop of one acquisition
type LoopResult struct {
	Scatter []ScatterPoint `json:"scatter" doc:"Decimated, direction-classified points"`
	Rising  BranchCurve    `json:"rising" doc:"Averaged rising branch"`
	Falling BranchCurve    `json:"falling" doc:"Averaged falling branch"`
	Bsat    float64        `json:"bsat" doc:"Saturation induction [T]"`
	Br      float64        `json:"br" doc:"Remanent induction at H = 0 on the rising branch [T]"`
	Hc      float64        `json:"hc" doc:"Coercivity at B = 0 on the rising branch [A/m]"`
}

// Outline returns the closed loop path: the rising branch in order followed by the
// falling branch in reverse.
func (l *LoopResult) Outline() []Point {
	out := make([]Point, 0, len(l.Rising)+len(l.Falling))
	out = append(out, l.Rising...)
	for i := len(l.Falling) - 1; i >= 0; i-- {
		out = append(out, l.Falling[i])
	}
	return out
}

// Stats summarises one channel
type Stats struct {
	Min        float64 `json:"min" doc:"Minimum value"`
	Max        float64 `json:"max" doc:"Maximum value"`
	PeakToPeak float64 `json:"peak_to_peak" doc:"Max minus min"`
	RMS        float64 `json:"rms" doc:"Root mean square"`
}

// PhysicalParameters describes the measurement fixture. All values must be > 0.
type PhysicalParameters struct {
	TurnsExc float64 `json:"turns_exc" exclusiveMinimum:"0" doc:"Excitation coil turns"`
	PathLen  float64 `json:"path_len" exclusiveMinimum:"0" doc:"Magnetic path length [m]"`
	Shunt    float64 `json:"shunt" exclusiveMinimum:"0" doc:"Shunt resistance [ohm]"`
	TurnsB   float64 `json:"turns_b" exclusiveMinimum:"0" doc:"Sense coil turns"`
	Area     float64 `json:"area" exclusiveMinimum:"0" doc:"Core cross-section area [m^2]"`
}

// DefaultPhysicalParameters returns the fixture the bench ships with
func DefaultPhysicalParameters() PhysicalParameters {
	return PhysicalParameters{
		TurnsExc: 100,
		PathLen:  0.1,
		Shunt:    1.0,
		TurnsB:   50,
		Area:     1e-4,
	}
}
