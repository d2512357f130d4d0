package game

import (
	"fmt"
	"math"
	"math/rand"
)

// renderShadow is the engine's presentational copy of an agent's pose: the
// previous and current tick values the renderer interpolates between. It is
// owned by the engine and never read back into RoundState.
type renderShadow struct {
	prevPos   Vec2
	prevAngle float64
	pos       Vec2
	angle     float64
}

// Engine drives the simulation: it accumulates wall-clock deltas into fixed
// 60 Hz physics ticks, runs the decision policy and collision engine once per
// tick, applies state transitions, and exposes the interpolation fraction the
// presentation layer uses to smooth between-tick motion. The engine is
// single-threaded; Advance and Apply must be called from the same goroutine.
type Engine struct {
	tun     *Tuning
	state   *RoundState
	collide *CollisionEngine
	policy  *DecisionPolicy
	rng     *rand.Rand
	log     *SimLog
	seed    int64

	tick        int
	simTime     float64 // milliseconds of simulated time, advances per tick
	accumulator float64

	countdownAccum float64
	restartTimer   float64 // ms until autonomous auto-restart; <0 disarmed

	shadows map[int]*renderShadow
}

// NewEngine creates an engine with a fresh countdown-phase round. The seed
// drives spawn placement and the policy's tie-breaking, so two engines with
// the same seed and the same Advance deltas produce identical rounds. A nil
// log disables event logging.
func NewEngine(tun *Tuning, seed int64, log *SimLog) *Engine {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay, not crypto
	collide := NewCollisionEngine(tun)
	e := &Engine{
		tun:          tun,
		collide:      collide,
		policy:       NewDecisionPolicy(tun, collide, rand.New(rand.NewSource(seed+1))), // #nosec G404
		rng:          rng,
		log:          log,
		seed:         seed,
		restartTimer: -1,
		shadows:      make(map[int]*renderShadow),
	}
	e.state = NewRoundState(tun, rng)
	e.resetShadows()
	return e
}

// State returns the canonical round state. Callers outside the engine must
// treat it as read-only.
func (e *Engine) State() *RoundState { return e.state }

// Tuning returns the engine's tuning block.
func (e *Engine) Tuning() *Tuning { return e.tun }

// Seed returns the seed this engine was created with.
func (e *Engine) Seed() int64 { return e.seed }

// Tick returns the number of physics ticks run so far.
func (e *Engine) Tick() int { return e.tick }

// SimTime returns the simulation clock in milliseconds. It advances only
// with physics ticks, so headless runs are exact.
func (e *Engine) SimTime() float64 { return e.simTime }

// Alpha returns the fraction of a fixed step left in the accumulator. The
// simulation never interpolates; the presentation layer uses this to smooth
// between-tick motion.
func (e *Engine) Alpha() float64 {
	return e.accumulator / e.tun.FixedStepMs
}

// Advance feeds elapsed wall-clock milliseconds into the loop. The delta is
// clamped so a stalled frame (backgrounded window, GC pause) is caught up
// bounded rather than spiralling.
func (e *Engine) Advance(deltaMs float64) {
	if deltaMs < 0 {
		deltaMs = 0
	}
	if deltaMs > e.tun.MaxFrameDeltaMs {
		deltaMs = e.tun.MaxFrameDeltaMs
	}

	switch e.state.Phase {
	case PhaseCountdown:
		e.countdownAccum += deltaMs
		for e.countdownAccum >= e.tun.CountdownTickMs && e.state.Phase == PhaseCountdown {
			e.countdownAccum -= e.tun.CountdownTickMs
			e.state.TickCountdown()
			e.log.Add(e.tick, "--", "phase", "countdown", fmt.Sprintf("%d", e.state.Countdown), float64(e.state.Countdown))
			if e.state.Phase == PhasePlaying {
				e.accumulator = 0
				e.log.Add(e.tick, "--", "phase", "change", "countdown → playing", 0)
			}
		}

	case PhasePlaying:
		e.accumulator += deltaMs
		for e.accumulator >= e.tun.FixedStepMs && e.state.Phase == PhasePlaying {
			e.physicsTick(e.tun.FixedStepMs)
			e.accumulator -= e.tun.FixedStepMs
		}

	case PhasePaused:
		// Suspended: time simply does not accumulate. Resuming continues
		// from here, it never replays skipped ticks.

	case PhaseGameOver:
		if !e.state.IsAutonomousMode {
			return
		}
		if e.restartTimer < 0 {
			e.restartTimer = e.tun.AutoRestartDelayMs
		}
		e.restartTimer -= deltaMs
		if e.restartTimer <= 0 {
			e.Restart()
		}
	}
}

// Restart begins a new round and disarms any pending auto-restart.
func (e *Engine) Restart() {
	e.policy.Reset()
	e.state.Restart(e.tun, e.rng)
	e.accumulator = 0
	e.countdownAccum = 0
	e.restartTimer = -1
	e.resetShadows()
	e.log.Add(e.tick, "--", "phase", "restart", "new round", 0)
}

// Stop releases the pending auto-restart timer. The loop itself stops by the
// caller simply ceasing to call Advance.
func (e *Engine) Stop() {
	e.restartTimer = -1
}

// physicsTick runs one fixed simulation step. It is two-phase: first every
// living agent's jump/turn bookkeeping and (throttled) decision runs against
// the pre-movement world, so all decisions within a tick see the same
// snapshot; then every agent's movement and collision commits.
func (e *Engine) physicsTick(dt float64) {
	e.tick++
	e.simTime += dt

	for _, a := range e.state.Agents {
		if sh := e.shadow(a.ID); sh != nil {
			sh.prevPos = sh.pos
			sh.prevAngle = sh.angle
		}
	}

	// Phase A: timers, turning, decisions.
	for _, a := range e.state.Agents {
		if !a.IsAlive {
			continue
		}

		if a.IsJumping && e.simTime-a.JumpStartTime >= e.tun.JumpDurationMs {
			e.state.EndJump(a.ID)
			e.log.AddVerbose(e.tick, a.Label(), "jump", "end", "", 0)
		}

		if a.IsTurning {
			e.advanceTurn(a, dt)
		}

		if e.isAutonomous(a) && !a.IsTurning && e.policy.ShouldDecide(a.ID, e.simTime) {
			d := e.policy.Decide(a, e.state.Agents, e.simTime)
			e.applyDecision(a, d)
		}
	}

	// Phase B: movement and collision.
	for _, a := range e.state.Agents {
		if !a.IsAlive {
			continue
		}

		dist := travelDistance(dt, a.Speed, e.tun.BaseSpeed)
		next := a.Position.Add(displacement(a.Angle, dist))

		if a.JumpHeight(e.simTime, e.tun) <= e.tun.JumpHeightThreshold {
			res := e.collide.CheckCollision(next, a.ID, e.state.Agents)
			if res.Collided {
				e.killAgent(a, res)
				continue
			}
		}
		e.state.UpdateCyclePosition(a.ID, next)
		e.log.AddVerbose(e.tick, a.Label(), "move", "position", fmt.Sprintf("(%.2f,%.2f)", next.X, next.Z), 0)

		if sh := e.shadow(a.ID); sh != nil {
			sh.pos = next
			sh.angle = a.Angle
		}
	}
}

// advanceTurn interpolates the continuous angle toward the committed target.
// The coarse direction snapped when the turn started; the angle catching up
// is purely visual, and arrival restores the pair's agreement invariant.
func (e *Engine) advanceTurn(a *AgentState, dt float64) {
	delta := angleDelta(a.Angle, a.TargetAngle)
	step := e.tun.TurnSpeed * dt
	if math.Abs(delta) <= step || math.Abs(delta) <= e.tun.TurnSnapEps {
		e.state.EndTurn(a.ID)
		e.log.AddVerbose(e.tick, a.Label(), "turn", "end", a.Direction.String(), 0)
		return
	}
	if delta > 0 {
		a.Angle = normalizeAngle(a.Angle + step)
	} else {
		a.Angle = normalizeAngle(a.Angle - step)
	}
}

// applyDecision translates a policy verdict into state transitions. A new
// turn is refused while one is in progress (guarded by the caller).
func (e *Engine) applyDecision(a *AgentState, d Decision) {
	switch d.Maneuver {
	case ManeuverTurnLeft:
		from := a.Direction
		e.state.StartTurn(a.ID, true)
		e.log.Add(e.tick, a.Label(), "ai", "turn", fmt.Sprintf("%s → %s", from, a.Direction), d.Urgency)
	case ManeuverTurnRight:
		from := a.Direction
		e.state.StartTurn(a.ID, false)
		e.log.Add(e.tick, a.Label(), "ai", "turn", fmt.Sprintf("%s → %s", from, a.Direction), d.Urgency)
	}
	if d.Jump {
		e.state.StartJump(a.ID, e.simTime, e.tun)
		if a.IsJumping {
			e.log.Add(e.tick, a.Label(), "ai", "jump", "", d.Urgency)
		}
	}
}

// killAgent applies an elimination and logs the round outcome when it ends.
func (e *Engine) killAgent(a *AgentState, res CollisionResult) {
	e.state.KillCycle(a.ID)
	e.log.Add(e.tick, a.Label(), "death", res.Kind.String(), fmt.Sprintf("other=%d", res.OtherID), 0)

	if e.state.Phase == PhaseGameOver {
		winner := "draw"
		if w := e.state.Agent(e.state.Winner); w != nil {
			winner = w.Label()
		}
		e.log.Add(e.tick, "--", "phase", "game_over", "winner="+winner, float64(e.state.Winner))
	}
}

// isAutonomous reports whether the decision policy drives this agent on this
// tick. The player's cycle is driven by the policy only until a human takes
// control.
func (e *Engine) isAutonomous(a *AgentState) bool {
	return !a.IsPlayer || e.state.IsAutonomousMode
}

// RenderPose returns the agent's interpolated position and angle for
// presentation, blending the previous and current tick by alpha.
func (e *Engine) RenderPose(id int, alpha float64) (Vec2, float64) {
	a := e.state.Agent(id)
	sh := e.shadow(id)
	if sh == nil {
		if a == nil {
			return Vec2{}, 0
		}
		return a.Position, a.Angle
	}
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	pos := Vec2{
		X: sh.prevPos.X + (sh.pos.X-sh.prevPos.X)*alpha,
		Z: sh.prevPos.Z + (sh.pos.Z-sh.prevPos.Z)*alpha,
	}
	angle := sh.prevAngle + angleDelta(sh.prevAngle, sh.angle)*alpha
	return pos, angle
}

// JumpOffset returns the agent's current height for the renderer.
func (e *Engine) JumpOffset(id int) float64 {
	a := e.state.Agent(id)
	if a == nil {
		return 0
	}
	return a.JumpHeight(e.simTime, e.tun)
}

func (e *Engine) shadow(id int) *renderShadow {
	return e.shadows[id]
}

func (e *Engine) resetShadows() {
	for _, a := range e.state.Agents {
		e.shadows[a.ID] = &renderShadow{
			prevPos:   a.Position,
			prevAngle: a.Angle,
			pos:       a.Position,
			angle:     a.Angle,
		}
	}
}
