package orient

import "math"

// TrueThicknessFromAlpha derives the perpendicular thickness of a
// structure from the downhole intercept length and the kenometer alpha
// angle. At alpha=0 the structure parallels the hole and the true
// thickness vanishes; at alpha=90 the hole cuts perpendicular and the
// downhole length is the true thickness.
func TrueThicknessFromAlpha(downholeLength, alphaKenoDeg float64) float64 {
	return downholeLength * math.Sin(deg2rad(alphaKenoDeg))
}

// GramMeters returns the metal accumulation metric: grade times true
// thickness.
func GramMeters(grade, trueThickness float64) float64 {
	return grade * trueThickness
}

// InterceptQuality rates how reliably a downhole intercept represents
// true thickness, based on the intersection angle.
type InterceptQuality string

const (
	QualityHigh     InterceptQuality = "high"
	QualityModerate InterceptQuality = "moderate"
	QualityLow      InterceptQuality = "low"
)

// RateIntercept classifies the kenometer alpha of an intersection and
// returns a short note for reporting. Above 70° the cut is near
// perpendicular and thickness is reliable; above 40° still reasonable;
// below that the shallow cut likely inflates apparent thickness.
func RateIntercept(alphaKenoDeg float64) (InterceptQuality, string) {
	switch {
	case alphaKenoDeg > 70:
		return QualityHigh, "High-angle intersection: near-perpendicular cut, thickness is reliable."
	case alphaKenoDeg > 40:
		return QualityModerate, "Moderate-angle intersection: reasonable cut."
	default:
		return QualityLow, "Low-angle intersection: shallow cut, likely apparent thickness inflation."
	}
}
