package protein

// Point is one sample of a titration curve.
type Point struct {
	PH     float64 `json:"ph"`
	Charge float64 `json:"charge"`
}

// TitrationCurve samples NetCharge at n evenly spaced pH values over
// [PHMin, PHMax]. n below 2 is raised to 2.
func TitrationCurve(seq string, n int) []Point {
	if n < 2 {
		n = 2
	}
	c := CountCharges(seq)
	step := (PHMax - PHMin) / float64(n-1)
	curve := make([]Point, n)
	for i := range curve {
		pH := PHMin + float64(i)*step
		curve[i] = Point{PH: pH, Charge: c.NetCharge(pH)}
	}
	return curve
}
