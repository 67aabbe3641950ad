package session

import "time"

type CommandType string

const (
	CmdSetHole        CommandType = "set-hole"
	CmdSetAlphaBeta   CommandType = "set-alphabeta"
	CmdSetOrientation CommandType = "set-orientation"
	CmdSetIntercept   CommandType = "set-intercept"
	CmdSetMode        CommandType = "set-mode"
	CmdReset          CommandType = "reset"
)

type Command interface {
	Type() CommandType
	ReceivedAt() time.Time
}

type SetHoleCommand struct {
	At      time.Time
	Azimuth float64 `json:"azimuth"`
	Dip     float64 `json:"dip"`
}

func (c SetHoleCommand) Type() CommandType     { return CmdSetHole }
func (c SetHoleCommand) ReceivedAt() time.Time { return c.At }

type SetAlphaBetaCommand struct {
	At    time.Time
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

func (c SetAlphaBetaCommand) Type() CommandType     { return CmdSetAlphaBeta }
func (c SetAlphaBetaCommand) ReceivedAt() time.Time { return c.At }

type SetOrientationCommand struct {
	At           time.Time
	Dip          float64 `json:"dip"`
	DipDirection float64 `json:"dipDirection"`
}

func (c SetOrientationCommand) Type() CommandType     { return CmdSetOrientation }
func (c SetOrientationCommand) ReceivedAt() time.Time { return c.At }

type SetInterceptCommand struct {
	At             time.Time
	DownholeLength float64 `json:"downholeLengthM"`
	Grade          float64 `json:"grade"`
}

func (c SetInterceptCommand) Type() CommandType     { return CmdSetIntercept }
func (c SetInterceptCommand) ReceivedAt() time.Time { return c.At }

type SetModeCommand struct {
	At   time.Time
	Mode Mode `json:"mode"`
}

func (c SetModeCommand) Type() CommandType     { return CmdSetMode }
func (c SetModeCommand) ReceivedAt() time.Time { return c.At }

type ResetCommand struct{ At time.Time }

func (c ResetCommand) Type() CommandType     { return CmdReset }
func (c ResetCommand) ReceivedAt() time.Time { return c.At }
