package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"truethick/internal/orient"
	"truethick/internal/session"
)

// calcFailedMsg is the only text a degenerate-geometry failure surfaces
// over the wire.
const calcFailedMsg = "calculation failed for the given inputs"

type Server struct {
	eng *session.Engine
	mux *http.ServeMux
}

func NewServer(eng *session.Engine) *Server {
	s := &Server{eng: eng, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.health)

	s.mux.HandleFunc("/convert/orientation", s.convertOrientation)
	s.mux.HandleFunc("/convert/alphabeta", s.convertAlphaBeta)
	s.mux.HandleFunc("/intercept", s.intercept)

	s.mux.HandleFunc("/worksheet", s.worksheet)
	s.mux.HandleFunc("/worksheet/hole", s.worksheetHole)
	s.mux.HandleFunc("/worksheet/alphabeta", s.worksheetAlphaBeta)
	s.mux.HandleFunc("/worksheet/orientation", s.worksheetOrientation)
	s.mux.HandleFunc("/worksheet/intercept", s.worksheetIntercept)
	s.mux.HandleFunc("/worksheet/mode", s.worksheetMode)
	s.mux.HandleFunc("/worksheet/reset", s.worksheetReset)

	s.mux.HandleFunc("/stream", s.streamSSE)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// Input ranges are enforced here at the boundary; the orient package only
// guards against degenerate vectors.

func validWrapped(name string, v float64) string {
	if v < 0 || v >= 360 {
		return name + " must be in [0,360)"
	}
	return ""
}

func validRange(name string, v, lo, hi float64) string {
	if v < lo || v > hi {
		return fmt.Sprintf("%s must be in [%g,%g]", name, lo, hi)
	}
	return ""
}

func validNonNegative(name string, v float64) string {
	if v < 0 {
		return name + " must be >= 0"
	}
	return ""
}

func firstMsg(msgs ...string) string {
	for _, m := range msgs {
		if m != "" {
			return m
		}
	}
	return ""
}

func (s *Server) convertOrientation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		HoleAzimuth           float64 `json:"holeAzimuth"`
		HoleDip               float64 `json:"holeDip"`
		StructureDip          float64 `json:"structureDip"`
		StructureDipDirection float64 `json:"structureDipDirection"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if msg := firstMsg(
		validWrapped("holeAzimuth", body.HoleAzimuth),
		validRange("holeDip", body.HoleDip, -90, 0),
		validRange("structureDip", body.StructureDip, 0, 90),
		validWrapped("structureDipDirection", body.StructureDipDirection),
	); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	hole, err := orient.HoleVector(body.HoleAzimuth, body.HoleDip)
	if err != nil {
		http.Error(w, calcFailedMsg, http.StatusUnprocessableEntity)
		return
	}
	normal, err := orient.PlaneNormalFromDipDipdir(body.StructureDip, body.StructureDipDirection)
	if err != nil {
		http.Error(w, calcFailedMsg, http.StatusUnprocessableEntity)
		return
	}

	alphaNormal := orient.AlphaNormal(hole, normal)
	beta, err := orient.Beta(hole, normal)
	if err != nil {
		http.Error(w, calcFailedMsg, http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, map[string]any{
		"alphaNormal": alphaNormal,
		"alpha":       orient.AlphaKenometer(alphaNormal),
		"beta":        beta,
	})
}

func (s *Server) convertAlphaBeta(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		HoleAzimuth float64 `json:"holeAzimuth"`
		HoleDip     float64 `json:"holeDip"`
		Alpha       float64 `json:"alpha"`
		Beta        float64 `json:"beta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if msg := firstMsg(
		validWrapped("holeAzimuth", body.HoleAzimuth),
		validRange("holeDip", body.HoleDip, -90, 0),
		validRange("alpha", body.Alpha, 0, 90),
		validWrapped("beta", body.Beta),
	); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	dip, dipdir, strike, err := orient.AlphaBetaToDipDipdir(body.HoleAzimuth, body.HoleDip, body.Alpha, body.Beta)
	if err != nil {
		http.Error(w, calcFailedMsg, http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, map[string]any{
		"dip":          dip,
		"dipDirection": dipdir,
		"strike":       strike,
	})
}

func (s *Server) intercept(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		DownholeLength float64 `json:"downholeLengthM"`
		Grade          float64 `json:"grade"`

		// Either a direct kenometer alpha, or the full orientation pair.
		Alpha                 *float64 `json:"alpha,omitempty"`
		HoleAzimuth           *float64 `json:"holeAzimuth,omitempty"`
		HoleDip               *float64 `json:"holeDip,omitempty"`
		StructureDip          *float64 `json:"structureDip,omitempty"`
		StructureDipDirection *float64 `json:"structureDipDirection,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if msg := firstMsg(
		validNonNegative("downholeLengthM", body.DownholeLength),
		validNonNegative("grade", body.Grade),
	); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	var alpha float64
	switch {
	case body.Alpha != nil:
		if msg := validRange("alpha", *body.Alpha, 0, 90); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		alpha = *body.Alpha

	case body.HoleAzimuth != nil && body.HoleDip != nil && body.StructureDip != nil && body.StructureDipDirection != nil:
		if msg := firstMsg(
			validWrapped("holeAzimuth", *body.HoleAzimuth),
			validRange("holeDip", *body.HoleDip, -90, 0),
			validRange("structureDip", *body.StructureDip, 0, 90),
			validWrapped("structureDipDirection", *body.StructureDipDirection),
		); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		hole, err := orient.HoleVector(*body.HoleAzimuth, *body.HoleDip)
		if err != nil {
			http.Error(w, calcFailedMsg, http.StatusUnprocessableEntity)
			return
		}
		normal, err := orient.PlaneNormalFromDipDipdir(*body.StructureDip, *body.StructureDipDirection)
		if err != nil {
			http.Error(w, calcFailedMsg, http.StatusUnprocessableEntity)
			return
		}
		alpha = orient.AlphaKenometer(orient.AlphaNormal(hole, normal))

	default:
		http.Error(w, "alpha or hole+structure orientation required", http.StatusBadRequest)
		return
	}

	tt := orient.TrueThicknessFromAlpha(body.DownholeLength, alpha)
	quality, note := orient.RateIntercept(alpha)

	writeJSON(w, map[string]any{
		"alpha":          alpha,
		"trueThicknessM": tt,
		"gramMeters":     orient.GramMeters(body.Grade, tt),
		"quality":        quality,
		"note":           note,
	})
}

func (s *Server) worksheet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	st, err := s.eng.GetState(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, st)
}

func (s *Server) worksheetHole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Azimuth float64 `json:"azimuth"`
		Dip     float64 `json:"dip"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if msg := firstMsg(
		validWrapped("azimuth", body.Azimuth),
		validRange("dip", body.Dip, -90, 0),
	); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	s.eng.Submit(session.SetHoleCommand{At: time.Now(), Azimuth: body.Azimuth, Dip: body.Dip})
	writeJSON(w, map[string]any{"status": "accepted", "type": session.CmdSetHole})
}

func (s *Server) worksheetAlphaBeta(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Alpha float64 `json:"alpha"`
		Beta  float64 `json:"beta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if msg := firstMsg(
		validRange("alpha", body.Alpha, 0, 90),
		validWrapped("beta", body.Beta),
	); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	s.eng.Submit(session.SetAlphaBetaCommand{At: time.Now(), Alpha: body.Alpha, Beta: body.Beta})
	writeJSON(w, map[string]any{"status": "accepted", "type": session.CmdSetAlphaBeta})
}

func (s *Server) worksheetOrientation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Dip          float64 `json:"dip"`
		DipDirection float64 `json:"dipDirection"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if msg := firstMsg(
		validRange("dip", body.Dip, 0, 90),
		validWrapped("dipDirection", body.DipDirection),
	); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	s.eng.Submit(session.SetOrientationCommand{At: time.Now(), Dip: body.Dip, DipDirection: body.DipDirection})
	writeJSON(w, map[string]any{"status": "accepted", "type": session.CmdSetOrientation})
}

func (s *Server) worksheetIntercept(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		DownholeLength float64 `json:"downholeLengthM"`
		Grade          float64 `json:"grade"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if msg := firstMsg(
		validNonNegative("downholeLengthM", body.DownholeLength),
		validNonNegative("grade", body.Grade),
	); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	s.eng.Submit(session.SetInterceptCommand{At: time.Now(), DownholeLength: body.DownholeLength, Grade: body.Grade})
	writeJSON(w, map[string]any{"status": "accepted", "type": session.CmdSetIntercept})
}

func (s *Server) worksheetMode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Mode session.Mode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if body.Mode != session.ModeAlphaBeta && body.Mode != session.ModeOrientation {
		http.Error(w, "mode must be alphabeta or orientation", http.StatusBadRequest)
		return
	}

	s.eng.Submit(session.SetModeCommand{At: time.Now(), Mode: body.Mode})
	writeJSON(w, map[string]any{"status": "accepted", "type": session.CmdSetMode})
}

func (s *Server) worksheetReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	s.eng.Submit(session.ResetCommand{At: time.Now()})
	writeJSON(w, map[string]any{"status": "accepted", "type": session.CmdReset})
}

func (s *Server) streamSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()
	ch, unsub := s.eng.Subscribe(ctx)
	defer unsub()

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			b, _ := json.Marshal(st)
			fmt.Fprintf(w, "event: worksheet\n")
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
