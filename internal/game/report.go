package game

import (
	"fmt"
	"strings"
)

// BuildRoundReport renders a plain-text debug report for the current round:
// seed, phase, per-agent summary, and the tail of the event log. The windowed
// build copies this to the clipboard; tests log it on failure.
func BuildRoundReport(e *Engine, logTail int) string {
	if logTail <= 0 {
		logTail = 40
	}
	s := e.State()

	var b strings.Builder
	fmt.Fprintf(&b, "--- lightgrid round report ---\n")
	fmt.Fprintf(&b, "seed=%d tick=%d sim_time=%.0fms phase=%s camera=%s autonomous=%v\n",
		e.Seed(), e.Tick(), e.SimTime(), s.Phase, s.CameraMode, s.IsAutonomousMode)
	if s.Phase == PhaseGameOver {
		winner := "draw"
		if w := s.Agent(s.Winner); w != nil {
			winner = w.Label()
		}
		fmt.Fprintf(&b, "winner=%s\n", winner)
	}
	b.WriteString("\nagents:\n")
	for _, a := range s.Agents {
		status := "alive"
		if !a.IsAlive {
			status = "dead"
		}
		turns := 0
		jumps := 0
		for _, entry := range e.log.FilterAgent(a.Label()) {
			switch {
			case entry.Category == "ai" && entry.Key == "turn", entry.Category == "turn" && entry.Key == "start":
				turns++
			case entry.Key == "jump", entry.Category == "jump" && entry.Key == "start":
				jumps++
			}
		}
		fmt.Fprintf(&b, "  %-4s %-6s score=%d pos=(%.1f,%.1f) dir=%-5s segments=%d turns=%d jumps=%d\n",
			a.Label(), status, s.Scores[a.ID], a.Position.X, a.Position.Z, a.Direction, len(a.Trail), turns, jumps)
	}

	tail := e.log.Tail(logTail)
	if len(tail) > 0 {
		fmt.Fprintf(&b, "\nlast %d events:\n", len(tail))
		for _, entry := range tail {
			b.WriteString("  ")
			b.WriteString(entry.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}
