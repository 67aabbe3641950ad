package session

import (
	"time"

	"truethick/internal/orient"
)

// Mode selects which measurement pair the worksheet treats as input.
type Mode string

const (
	// ModeAlphaBeta solves structure orientation from kenometer readings.
	ModeAlphaBeta Mode = "alphabeta"
	// ModeOrientation derives kenometer angles from a known structure
	// orientation.
	ModeOrientation Mode = "orientation"
)

// Worksheet holds the current form inputs. It is plain data owned by the
// engine goroutine; callers change it only through commands.
type Worksheet struct {
	Mode Mode `json:"mode"`

	HoleAzimuth float64 `json:"holeAzimuth"`
	HoleDip     float64 `json:"holeDip"`

	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`

	StructureDip          float64 `json:"structureDip"`
	StructureDipDirection float64 `json:"structureDipDirection"`

	DownholeLength float64 `json:"downholeLengthM"`
	Grade          float64 `json:"grade"`
}

// DefaultWorksheet returns the worksheet preloaded with the standard demo
// scenario: a hole at 240/-60 through a 45-degree structure dipping
// toward 135, a 10 m intercept at 5 g/t.
func DefaultWorksheet() Worksheet {
	return Worksheet{
		Mode:                  ModeAlphaBeta,
		HoleAzimuth:           240,
		HoleDip:               -60,
		Alpha:                 60,
		Beta:                  30,
		StructureDip:          45,
		StructureDipDirection: 135,
		DownholeLength:        10,
		Grade:                 5,
	}
}

// WorksheetState is a snapshot of the worksheet together with everything
// derived from it. Beta's zero reference depends on the mode: in
// orientation mode it is the geographic dip-direction vector (folded into
// [0,180]), in alphabeta mode it echoes the hole-frame reading.
type WorksheetState struct {
	Inputs Worksheet `json:"inputs"`

	Dip          float64 `json:"dip"`
	DipDirection float64 `json:"dipDirection"`
	Strike       float64 `json:"strike"`

	AlphaNormal float64 `json:"alphaNormal"`
	Alpha       float64 `json:"alpha"` // kenometer convention
	Beta        float64 `json:"beta"`

	TrueThickness float64                 `json:"trueThicknessM"`
	GramMeters    float64                 `json:"gramMeters"`
	Quality       orient.InterceptQuality `json:"quality,omitempty"`
	QualityNote   string                  `json:"qualityNote,omitempty"`

	Warning string    `json:"warning,omitempty"`
	TS      time.Time `json:"ts"`
}
