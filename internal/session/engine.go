package session

import (
	"context"
	"time"

	"truethick/internal/orient"
)

// warnCalcFailed is the only failure text a snapshot carries; degenerate
// geometry must not leak internals past the boundary.
const warnCalcFailed = "calculation failed for the current inputs"

type stateReq struct {
	reply chan WorksheetState
}

type subscribeReq struct {
	ch chan WorksheetState
}

// Engine owns the live worksheet. All access goes through channels; the
// Run goroutine is the only holder of the state.
type Engine struct {
	defaults Worksheet

	cmdCh       chan Command
	stateReqCh  chan stateReq
	subscribeCh chan subscribeReq
	unsubCh     chan chan WorksheetState
}

type Config struct {
	// Defaults seeds the worksheet at startup and on reset.
	Defaults Worksheet
}

func New(cfg Config) *Engine {
	if cfg.Defaults == (Worksheet{}) {
		cfg.Defaults = DefaultWorksheet()
	}
	if cfg.Defaults.Mode == "" {
		cfg.Defaults.Mode = ModeAlphaBeta
	}
	return &Engine{
		defaults:    cfg.Defaults,
		cmdCh:       make(chan Command, 128),
		stateReqCh:  make(chan stateReq, 32),
		subscribeCh: make(chan subscribeReq, 32),
		unsubCh:     make(chan chan WorksheetState, 32),
	}
}

func (e *Engine) Submit(cmd Command) {
	select {
	case e.cmdCh <- cmd:
	default:
		// drop if overloaded
	}
}

func (e *Engine) GetState(ctx context.Context) (WorksheetState, error) {
	req := stateReq{reply: make(chan WorksheetState, 1)}
	select {
	case e.stateReqCh <- req:
	case <-ctx.Done():
		return WorksheetState{}, ctx.Err()
	}

	select {
	case st := <-req.reply:
		return st, nil
	case <-ctx.Done():
		return WorksheetState{}, ctx.Err()
	}
}

func (e *Engine) Subscribe(ctx context.Context) (<-chan WorksheetState, func()) {
	ch := make(chan WorksheetState, 32)

	select {
	case e.subscribeCh <- subscribeReq{ch: ch}:
	case <-ctx.Done():
		close(ch)
		return ch, func() {}
	}

	unsub := func() {
		select {
		case e.unsubCh <- ch:
		default:
		}
	}
	return ch, unsub
}

// Run owns the worksheet until ctx is cancelled. Every accepted command
// recomputes the derived results and publishes a snapshot to subscribers;
// slow subscribers drop frames.
func (e *Engine) Run(ctx context.Context) error {
	ws := e.defaults

	subs := map[chan WorksheetState]struct{}{}

	publish := func(st WorksheetState) {
		for ch := range subs {
			select {
			case ch <- st:
			default:
				// slow subscriber -> drop frame
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			for ch := range subs {
				close(ch)
			}
			return nil

		case req := <-e.subscribeCh:
			subs[req.ch] = struct{}{}
			req.ch <- derive(ws, time.Now())

		case ch := <-e.unsubCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case req := <-e.stateReqCh:
			req.reply <- derive(ws, time.Now())

		case cmd := <-e.cmdCh:
			switch c := cmd.(type) {
			case SetHoleCommand:
				ws.HoleAzimuth, ws.HoleDip = c.Azimuth, c.Dip
			case SetAlphaBetaCommand:
				ws.Alpha, ws.Beta = c.Alpha, c.Beta
				ws.Mode = ModeAlphaBeta
			case SetOrientationCommand:
				ws.StructureDip, ws.StructureDipDirection = c.Dip, c.DipDirection
				ws.Mode = ModeOrientation
			case SetInterceptCommand:
				ws.DownholeLength, ws.Grade = c.DownholeLength, c.Grade
			case SetModeCommand:
				ws.Mode = c.Mode
			case ResetCommand:
				ws = e.defaults
			default:
				continue
			}
			publish(derive(ws, cmd.ReceivedAt()))
		}
	}
}

// derive recomputes every output the worksheet supports. Degenerate
// geometry surfaces as a Warning on the snapshot, never as a crash; fields
// that could not be computed stay zero.
func derive(ws Worksheet, ts time.Time) WorksheetState {
	st := WorksheetState{Inputs: ws, TS: ts}

	switch ws.Mode {
	case ModeOrientation:
		hole, err := orient.HoleVector(ws.HoleAzimuth, ws.HoleDip)
		if err != nil {
			st.Warning = warnCalcFailed
			return st
		}
		normal, err := orient.PlaneNormalFromDipDipdir(ws.StructureDip, ws.StructureDipDirection)
		if err != nil {
			st.Warning = warnCalcFailed
			return st
		}

		st.AlphaNormal = orient.AlphaNormal(hole, normal)
		st.Alpha = orient.AlphaKenometer(st.AlphaNormal)
		if beta, err := orient.Beta(hole, normal); err != nil {
			st.Warning = warnCalcFailed
		} else {
			st.Beta = beta
		}

		st.Dip = ws.StructureDip
		st.DipDirection = ws.StructureDipDirection
		st.Strike = orient.StrikeFromDipdir(ws.StructureDipDirection)

	default: // ModeAlphaBeta
		dip, dipdir, strike, err := orient.AlphaBetaToDipDipdir(ws.HoleAzimuth, ws.HoleDip, ws.Alpha, ws.Beta)
		if err != nil {
			st.Warning = warnCalcFailed
			return st
		}
		st.Dip, st.DipDirection, st.Strike = dip, dipdir, strike
		st.Alpha = ws.Alpha
		st.AlphaNormal = orient.AlphaKenometer(ws.Alpha)
		st.Beta = ws.Beta
	}

	st.TrueThickness = orient.TrueThicknessFromAlpha(ws.DownholeLength, st.Alpha)
	st.GramMeters = orient.GramMeters(ws.Grade, st.TrueThickness)
	st.Quality, st.QualityNote = orient.RateIntercept(st.Alpha)
	return st
}
