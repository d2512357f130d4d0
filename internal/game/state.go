package game

import (
	"math"
	"math/rand"
)

// Phase is the round lifecycle state.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// CameraMode selects how the presentation layer frames the arena. The
// simulation only stores the choice.
type CameraMode int

const (
	CameraOverview CameraMode = iota
	CameraFollow
)

func (c CameraMode) String() string {
	switch c {
	case CameraOverview:
		return "overview"
	case CameraFollow:
		return "follow"
	default:
		return "unknown"
	}
}

// NoWinner is the Winner value for an undecided round or a double knockout.
const NoWinner = -1

// RoundState is the single source of truth for one round. It is mutated only
// through the named transition methods below; none of them perform I/O, and
// any randomness (spawn placement) comes from an injected rand.Rand so a
// seeded run is reproducible. Transitions looking up an unknown agent id
// no-op rather than panic: agents are never removed mid-round, but external
// callers can race a restart.
type RoundState struct {
	Phase            Phase
	Agents           []*AgentState
	CameraMode       CameraMode
	Countdown        int
	Winner           int // agent id, NoWinner for none/draw
	Scores           map[int]int
	IsAutonomousMode bool // no human input yet; an AI stands in for the player
}

// NewRoundState builds a fresh round in countdown phase with generated spawns.
func NewRoundState(tun *Tuning, rng *rand.Rand) *RoundState {
	s := &RoundState{
		Phase:            PhaseCountdown,
		Countdown:        tun.CountdownStart,
		Winner:           NoWinner,
		Scores:           make(map[int]int),
		IsAutonomousMode: true,
	}
	s.Agents = generateSpawns(tun, rng)
	for _, a := range s.Agents {
		s.Scores[a.ID] = 0
	}
	return s
}

// Agent returns the agent with the given id, or nil.
func (s *RoundState) Agent(id int) *AgentState {
	for _, a := range s.Agents {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Player returns the human-controllable agent, or nil.
func (s *RoundState) Player() *AgentState {
	for _, a := range s.Agents {
		if a.IsPlayer {
			return a
		}
	}
	return nil
}

// AliveCount returns how many agents are still alive.
func (s *RoundState) AliveCount() int {
	n := 0
	for _, a := range s.Agents {
		if a.IsAlive {
			n++
		}
	}
	return n
}

// StartTurn commits a 90° turn for the agent. The trail corner is recorded at
// the current position before the visual turn begins, the coarse direction
// snaps to the destination immediately, and the continuous angle is left for
// the orchestrator to interpolate toward TargetAngle. A turn while already
// turning, or for a dead or unknown agent, is ignored.
func (s *RoundState) StartTurn(id int, left bool) {
	a := s.Agent(id)
	if a == nil || !a.IsAlive || a.IsTurning {
		return
	}
	next := a.Direction.Right()
	if left {
		next = a.Direction.Left()
	}

	// Close the head segment at the attachment point and open a new one so
	// the trail's logical geometry is exact before the heading animates.
	if head := a.headSegment(); head != nil {
		head.End = a.Position
	}
	a.Trail = append(a.Trail, TrailSegment{Start: a.Position, End: a.Position, Direction: next})
	a.TrailActive = true

	a.Direction = next
	a.TargetAngle = next.Angle()
	a.IsTurning = true
}

// EndTurn completes a turn: the angle snaps to the cardinal the direction
// already committed to, restoring the angle/direction agreement invariant.
func (s *RoundState) EndTurn(id int) {
	a := s.Agent(id)
	if a == nil || !a.IsTurning {
		return
	}
	a.Angle = a.Direction.Angle()
	a.TargetAngle = noTargetAngle
	a.IsTurning = false
}

// UpdateCyclePosition is the only per-tick position mutation. It also drags
// the live trail segment's end along.
func (s *RoundState) UpdateCyclePosition(id int, pos Vec2) {
	a := s.Agent(id)
	if a == nil {
		return
	}
	a.Position = pos
	if head := a.headSegment(); head != nil {
		head.End = pos
	}
}

// StartJump begins a jump if the agent is alive and off cooldown.
func (s *RoundState) StartJump(id int, now float64, tun *Tuning) {
	a := s.Agent(id)
	if a == nil || !a.IsAlive || !a.CanJump(now, tun) {
		return
	}
	a.IsJumping = true
	a.JumpStartTime = now
	a.LastJumpTime = now
}

// EndJump lands the agent.
func (s *RoundState) EndJump(id int) {
	a := s.Agent(id)
	if a == nil {
		return
	}
	a.IsJumping = false
}

// KillCycle eliminates an agent and evaluates the end of the round. The agent
// record and its trail stay: a doomed cycle's wall remains a hazard. The
// round only ends when at most one agent is left alive, so a dead player
// spectates while the remaining opponents fight to a conclusion. The sole
// survivor is recorded as the winner and scores a point; a double knockout
// leaves Winner at NoWinner and awards nothing.
func (s *RoundState) KillCycle(id int) {
	a := s.Agent(id)
	if a == nil || !a.IsAlive {
		return
	}
	a.IsAlive = false
	a.IsTurning = false
	a.TargetAngle = noTargetAngle
	a.IsJumping = false

	alive := s.AliveCount()
	if alive > 1 {
		return
	}
	if alive == 0 {
		// Double knockout. If the first death of the pair already crowned a
		// provisional winner this tick, retract the point: a draw awards
		// nothing.
		if s.Phase == PhaseGameOver && s.Winner != NoWinner {
			s.Scores[s.Winner]--
		}
		s.Phase = PhaseGameOver
		s.Winner = NoWinner
		return
	}
	s.Phase = PhaseGameOver
	s.Winner = NoWinner
	for _, other := range s.Agents {
		if other.IsAlive {
			s.Winner = other.ID
			s.Scores[other.ID]++
			break
		}
	}
}

// TakeControl latches autonomous mode off: from the first human steering or
// jump input onward, the decision policy leaves the player's agent alone.
func (s *RoundState) TakeControl() {
	s.IsAutonomousMode = false
}

// SetCameraMode stores the presentation layer's camera selection.
func (s *RoundState) SetCameraMode(m CameraMode) {
	s.CameraMode = m
}

// Pause suspends a running round.
func (s *RoundState) Pause() {
	if s.Phase == PhasePlaying {
		s.Phase = PhasePaused
	}
}

// Resume continues a paused round.
func (s *RoundState) Resume() {
	if s.Phase == PhasePaused {
		s.Phase = PhasePlaying
	}
}

// TickCountdown decrements the pre-round counter; reaching zero starts play.
func (s *RoundState) TickCountdown() {
	if s.Phase != PhaseCountdown {
		return
	}
	if s.Countdown > 0 {
		s.Countdown--
	}
	if s.Countdown <= 0 {
		s.Phase = PhasePlaying
	}
}

// Restart begins a new round after game over: fresh spawn positions and
// headings, empty trails, reset turn and jump state. Scores and the
// autonomous-mode latch carry across rounds.
func (s *RoundState) Restart(tun *Tuning, rng *rand.Rand) {
	fresh := generateSpawns(tun, rng)
	for i, a := range s.Agents {
		if i < len(fresh) {
			*a = *fresh[i]
		}
	}
	s.Phase = PhaseCountdown
	s.Countdown = tun.CountdownStart
	s.Winner = NoWinner
}

// generateSpawns places one agent per arena side, offset along the wall by
// the injected RNG, facing inward. Agent 0 is the player.
func generateSpawns(tun *Tuning, rng *rand.Rand) []*AgentState {
	sides := [4]Direction{North, East, South, West} // heading when spawned on the opposite wall
	dist := tun.ArenaHalf * 0.7
	spread := tun.ArenaHalf * 0.8

	agents := make([]*AgentState, 0, tun.AgentCount)
	for i := 0; i < tun.AgentCount; i++ {
		dir := sides[i%4]
		off := (rng.Float64() - 0.5) * spread
		// Start on the wall opposite the heading so every cycle rides inward.
		pos := dir.Vec().Scale(-dist)
		if dir == North || dir == South {
			pos.X += off
		} else {
			pos.Z += off
		}
		a := &AgentState{
			ID:           i,
			IsPlayer:     i == 0,
			Position:     pos,
			Angle:        dir.Angle(),
			TargetAngle:  noTargetAngle,
			Direction:    dir,
			IsAlive:      true,
			Speed:        1.0,
			LastJumpTime: -math.MaxFloat64,
		}
		a.Trail = []TrailSegment{{Start: pos, End: pos, Direction: dir}}
		agents = append(agents, a)
	}
	return agents
}
