package game

// ArenaSim is a headless simulation harness used by tests and the headless
// report command. It drives the engine with synthetic fixed deltas, so runs
// are exactly reproducible under a seed and need no display.
type ArenaSim struct {
	Engine *Engine
	SimLog *SimLog
	tun    *Tuning
	seed   int64
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // tuning, seed, verbosity; applied first
	simOptWorld                      // phase and agent overrides, applied after the engine exists
)

// SimOption is a builder function applied to an ArenaSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*ArenaSim)
}

// WithTuning replaces the default tuning block.
func WithTuning(t *Tuning) SimOption {
	return SimOption{simOptInfra, func(as *ArenaSim) {
		as.tun = t
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(as *ArenaSim) {
		as.seed = seed
	}}
}

// WithVerbose enables per-tick position/turn/jump entries in the SimLog.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(as *ArenaSim) {
		as.SimLog = NewSimLog(v)
	}}
}

// WithPlayingPhase skips the countdown so ticks simulate immediately.
func WithPlayingPhase() SimOption {
	return SimOption{simOptWorld, func(as *ArenaSim) {
		as.Engine.state.Countdown = 0
		as.Engine.state.Phase = PhasePlaying
	}}
}

// WithAgentAt overrides an agent's spawn pose before the round starts.
func WithAgentAt(id int, pos Vec2, dir Direction) SimOption {
	return SimOption{simOptWorld, func(as *ArenaSim) {
		a := as.Engine.state.Agent(id)
		if a == nil {
			return
		}
		a.Position = pos
		a.Direction = dir
		a.Angle = dir.Angle()
		a.TargetAngle = noTargetAngle
		a.IsTurning = false
		a.Trail = []TrailSegment{{Start: pos, End: pos, Direction: dir}}
		a.TrailActive = false
		as.Engine.resetShadows()
	}}
}

// NewArenaSim constructs a harness from the given options in two ordered
// passes: infrastructure options first, then world overrides once the engine
// exists.
func NewArenaSim(opts ...SimOption) *ArenaSim {
	as := &ArenaSim{
		tun:  DefaultTuning(),
		seed: 1,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(as)
		}
	}
	if as.SimLog == nil {
		as.SimLog = NewSimLog(false)
	}
	as.Engine = NewEngine(as.tun, as.seed, as.SimLog)
	for _, o := range opts {
		if o.kind == simOptWorld {
			o.fn(as)
		}
	}
	return as
}

// State returns the canonical round state.
func (as *ArenaSim) State() *RoundState {
	return as.Engine.State()
}

// RunTicks advances the simulation by n fixed steps' worth of time.
func (as *ArenaSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		as.Engine.Advance(as.tun.FixedStepMs)
	}
}

// RunMs advances the simulation by a raw wall-clock delta, in one call, the
// way a real frame callback would.
func (as *ArenaSim) RunMs(ms float64) {
	as.Engine.Advance(ms)
}

// RunUntilGameOver advances tick by tick until the round ends or maxTicks
// elapse, and returns the number of ticks consumed.
func (as *ArenaSim) RunUntilGameOver(maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		if as.Engine.State().Phase == PhaseGameOver {
			return i
		}
		as.Engine.Advance(as.tun.FixedStepMs)
	}
	return maxTicks
}
