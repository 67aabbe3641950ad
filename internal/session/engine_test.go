package session

import (
	"context"
	"math"
	"testing"
	"time"
)

const tol = 1e-6

func startEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	eng := New(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = eng.Run(ctx) }()
	return eng
}

// waitForState polls snapshots until cond holds; commands are applied
// asynchronously by the engine goroutine.
func waitForState(t *testing.T, eng *Engine, cond func(WorksheetState) bool) WorksheetState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		st, err := eng.GetState(ctx)
		cancel()
		if err == nil && cond(st) {
			return st
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("timed out waiting for state")
	return WorksheetState{}
}

func TestEngineDerivesDefaults(t *testing.T) {
	eng := startEngine(t, Config{})

	st := waitForState(t, eng, func(st WorksheetState) bool { return !st.TS.IsZero() })
	if st.Inputs != DefaultWorksheet() {
		t.Fatalf("inputs %+v, want defaults", st.Inputs)
	}
	// Defaults: 10 m at alpha 60 -> TT = 10*sin(60), GM = 5*TT.
	wantTT := 10 * math.Sin(60*math.Pi/180)
	if math.Abs(st.TrueThickness-wantTT) > tol {
		t.Fatalf("TrueThickness = %v, want %v", st.TrueThickness, wantTT)
	}
	if math.Abs(st.GramMeters-5*wantTT) > tol {
		t.Fatalf("GramMeters = %v, want %v", st.GramMeters, 5*wantTT)
	}
	if st.Warning != "" {
		t.Fatalf("unexpected warning %q", st.Warning)
	}
}

func TestEngineUpdateRecomputes(t *testing.T) {
	eng := startEngine(t, Config{})

	eng.Submit(SetAlphaBetaCommand{At: time.Now(), Alpha: 90, Beta: 0})
	eng.Submit(SetInterceptCommand{At: time.Now(), DownholeLength: 10, Grade: 5})

	st := waitForState(t, eng, func(st WorksheetState) bool {
		return st.Inputs.Alpha == 90 && st.Inputs.DownholeLength == 10
	})
	if math.Abs(st.TrueThickness-10) > tol {
		t.Fatalf("TrueThickness = %v, want 10", st.TrueThickness)
	}
	if math.Abs(st.GramMeters-50) > tol {
		t.Fatalf("GramMeters = %v, want 50", st.GramMeters)
	}
	if st.Quality != "high" {
		t.Fatalf("Quality = %v, want high", st.Quality)
	}
}

func TestEngineOrientationMode(t *testing.T) {
	eng := startEngine(t, Config{})

	eng.Submit(SetHoleCommand{At: time.Now(), Azimuth: 240, Dip: -60})
	eng.Submit(SetOrientationCommand{At: time.Now(), Dip: 45, DipDirection: 135})

	st := waitForState(t, eng, func(st WorksheetState) bool {
		return st.Inputs.Mode == ModeOrientation && st.Inputs.StructureDip == 45
	})
	if st.Alpha < 0 || st.Alpha > 90 {
		t.Fatalf("kenometer alpha %v outside [0,90]", st.Alpha)
	}
	if math.Abs(st.Alpha+st.AlphaNormal-90) > tol {
		t.Fatalf("alpha %v and alphaNormal %v do not sum to 90", st.Alpha, st.AlphaNormal)
	}
	if math.Abs(st.Strike-45) > tol {
		t.Fatalf("Strike = %v, want 45", st.Strike)
	}
	if st.Warning != "" {
		t.Fatalf("unexpected warning %q", st.Warning)
	}
}

func TestEngineWarnsOnDegenerateGeometry(t *testing.T) {
	eng := startEngine(t, Config{})

	// A horizontal structure has a vertical normal; beta has no reference
	// direction, but alpha is still well defined.
	eng.Submit(SetOrientationCommand{At: time.Now(), Dip: 0, DipDirection: 0})

	st := waitForState(t, eng, func(st WorksheetState) bool {
		return st.Inputs.Mode == ModeOrientation && st.Inputs.StructureDip == 0
	})
	if st.Warning == "" {
		t.Fatal("expected a warning for degenerate beta")
	}
	// Hole at -60 dip against a vertical normal: alpha-to-normal 30.
	if math.Abs(st.AlphaNormal-30) > tol {
		t.Fatalf("AlphaNormal = %v, want 30", st.AlphaNormal)
	}
}

func TestEngineReset(t *testing.T) {
	eng := startEngine(t, Config{})

	eng.Submit(SetInterceptCommand{At: time.Now(), DownholeLength: 99, Grade: 1})
	waitForState(t, eng, func(st WorksheetState) bool { return st.Inputs.DownholeLength == 99 })

	eng.Submit(ResetCommand{At: time.Now()})
	st := waitForState(t, eng, func(st WorksheetState) bool { return st.Inputs.DownholeLength != 99 })
	if st.Inputs != DefaultWorksheet() {
		t.Fatalf("inputs after reset %+v, want defaults", st.Inputs)
	}
}

func TestEngineSubscribePublishes(t *testing.T) {
	eng := startEngine(t, Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ch, unsub := eng.Subscribe(ctx)
	defer unsub()

	// Initial snapshot arrives on subscription.
	select {
	case st := <-ch:
		if st.TS.IsZero() {
			t.Fatal("initial snapshot has zero timestamp")
		}
	case <-ctx.Done():
		t.Fatal("no initial snapshot")
	}

	eng.Submit(SetInterceptCommand{At: time.Now(), DownholeLength: 20, Grade: 2})
	for {
		select {
		case st := <-ch:
			if st.Inputs.DownholeLength == 20 {
				return
			}
		case <-ctx.Done():
			t.Fatal("no published snapshot after update")
		}
	}
}

func TestEngineStopClosesSubscribers(t *testing.T) {
	eng := New(Config{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = eng.Run(ctx)
		close(done)
	}()

	subCtx, subCancel := context.WithTimeout(context.Background(), time.Second)
	defer subCancel()
	ch, _ := eng.Subscribe(subCtx)
	<-ch // initial snapshot

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	if _, ok := <-ch; ok {
		// a buffered snapshot may remain; drain until closed
		for range ch {
		}
	}
}
