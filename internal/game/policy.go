package game

import "math/rand"

// Maneuver is one of the three legal choices an autonomous agent evaluates.
type Maneuver int

const (
	ManeuverContinue Maneuver = iota
	ManeuverTurnLeft
	ManeuverTurnRight
)

func (m Maneuver) String() string {
	switch m {
	case ManeuverContinue:
		return "continue"
	case ManeuverTurnLeft:
		return "turn_left"
	case ManeuverTurnRight:
		return "turn_right"
	default:
		return "unknown"
	}
}

// Decision is the policy's verdict for one decision tick.
type Decision struct {
	Maneuver Maneuver
	Urgency  float64 // 0 = cruising, 1 = imminent death
	Jump     bool
}

// candidate is one evaluated heading.
type candidate struct {
	maneuver Maneuver
	dir      Direction
	forward  RaycastResult
	escape   int
	danger   float64
	score    float64
}

// dangerSampleOffsets are the distances along a candidate heading at which
// own-trail proximity is sampled.
var dangerSampleOffsets = [4]float64{5, 10, 15, 20}

// selfTrailDangerDrop excludes the agent's newest segments from the
// own-trail proximity score; only older walls count as self-boxing.
const selfTrailDangerDrop = 4

// DecisionPolicy chooses maneuvers for autonomous agents. It perceives the
// world exclusively through the collision engine's raycasts. The per-agent
// decision timestamps live here, keyed by agent id, never inside RoundState,
// so the state machine stays pure and serializable.
type DecisionPolicy struct {
	tun          *Tuning
	collide      *CollisionEngine
	rng          *rand.Rand
	lastDecision map[int]float64
}

// NewDecisionPolicy creates a policy with its own RNG for tie-breaking and
// spontaneous jumps.
func NewDecisionPolicy(tun *Tuning, collide *CollisionEngine, rng *rand.Rand) *DecisionPolicy {
	return &DecisionPolicy{
		tun:          tun,
		collide:      collide,
		rng:          rng,
		lastDecision: make(map[int]float64),
	}
}

// ShouldDecide rate-limits decisions to one per DecisionIntervalMs per agent.
// This throttle, not the frame rate, bounds how twitchy the behaviour looks.
func (p *DecisionPolicy) ShouldDecide(id int, now float64) bool {
	last, ok := p.lastDecision[id]
	return !ok || now-last >= p.tun.DecisionIntervalMs
}

// Reset clears all per-agent decision timestamps at round restart.
func (p *DecisionPolicy) Reset() {
	p.lastDecision = make(map[int]float64)
}

// Decide evaluates the three candidate headings for the agent and returns a
// maneuver, its urgency, and whether to jump. Between decisions the agent
// simply continues its last committed heading.
func (p *DecisionPolicy) Decide(a *AgentState, agents []*AgentState, now float64) Decision {
	p.lastDecision[a.ID] = now

	cands := [3]candidate{
		{maneuver: ManeuverContinue, dir: a.Direction},
		{maneuver: ManeuverTurnLeft, dir: a.Direction.Left()},
		{maneuver: ManeuverTurnRight, dir: a.Direction.Right()},
	}
	for i := range cands {
		p.evaluate(&cands[i], a, agents)
	}
	forward := &cands[0]
	urgency := 1 - forward.forward.Distance/(2*p.tun.LookAhead)
	if urgency < 0 {
		urgency = 0
	}

	// 1. Imminent death ahead: jump a jumpable trail, otherwise take the best
	// turn. When every heading is doomed, pick a turn at random and hope.
	if forward.forward.Distance < p.tun.MinTurnDistance {
		if forward.forward.Kind == CollisionTrail &&
			forward.forward.Distance <= p.tun.JumpClearRange &&
			a.CanJump(now, p.tun) {
			return Decision{Maneuver: ManeuverContinue, Urgency: 1, Jump: true}
		}
		left, right := &cands[1], &cands[2]
		if left.forward.Distance < p.tun.MinTurnDistance && right.forward.Distance < p.tun.MinTurnDistance {
			if p.rng.Intn(2) == 0 {
				return Decision{Maneuver: ManeuverTurnLeft, Urgency: 1}
			}
			return Decision{Maneuver: ManeuverTurnRight, Urgency: 1}
		}
		best := left
		if right.score > left.score {
			best = right
		}
		return Decision{Maneuver: best.maneuver, Urgency: 1}
	}

	bestTurn := &cands[1]
	if cands[2].score > bestTurn.score {
		bestTurn = &cands[2]
	}

	// 2. A turn that clearly beats continuing wins outright.
	if bestTurn.score > forward.score+p.tun.TurnMargin {
		return Decision{Maneuver: bestTurn.maneuver, Urgency: urgency}
	}

	// 3. Boxed-in warning: forward is closing in and leaves too few ways out.
	// Preempt with any turn that opens strictly more escape paths.
	if forward.escape < p.tun.BoxedEscapeLimit && forward.forward.Distance < p.tun.BoxedForwardLimit {
		pick := (*candidate)(nil)
		for i := 1; i < 3; i++ {
			c := &cands[i]
			if c.escape <= forward.escape {
				continue
			}
			if pick == nil || c.score > pick.score {
				pick = c
			}
		}
		if pick != nil {
			return Decision{Maneuver: pick.maneuver, Urgency: urgency}
		}
	}

	// 4. Forward is under half the probe range: a smaller margin suffices.
	if forward.forward.Distance < p.tun.LookAhead && bestTurn.score > forward.score+p.tun.CloseTurnMargin {
		return Decision{Maneuver: bestTurn.maneuver, Urgency: urgency}
	}

	// 5. Occasional unforced jump, for variety.
	if a.CanJump(now, p.tun) && p.rng.Float64() < p.tun.RandomJumpChance {
		return Decision{Maneuver: ManeuverContinue, Urgency: urgency, Jump: true}
	}

	return Decision{Maneuver: ManeuverContinue, Urgency: urgency}
}

// evaluate fills in the candidate's perception and score.
func (p *DecisionPolicy) evaluate(c *candidate, a *AgentState, agents []*AgentState) {
	c.forward = p.collide.Raycast(a.Position, c.dir.Vec(), 2*p.tun.LookAhead, agents, a.ID)
	c.escape = p.escapePaths(a, c.dir, agents)
	c.danger = p.selfTrailDanger(a, c.dir, agents)
	c.score = p.tun.ForwardWeight*c.forward.Distance +
		p.tun.EscapeWeight*float64(c.escape) +
		p.tun.DangerWeight*c.danger
}

// escapePaths projects a point EscapeProjection units along dir and counts how
// many of the four cardinals from there clear at least EscapeClearance units,
// a proxy for how boxed-in the agent would be after committing to dir.
func (p *DecisionPolicy) escapePaths(a *AgentState, dir Direction, agents []*AgentState) int {
	proj := a.Position.Add(dir.Vec().Scale(p.tun.EscapeProjection))
	open := 0
	for _, c := range cardinals {
		r := p.collide.Raycast(proj, c.Vec(), p.tun.EscapeClearance, agents, a.ID)
		if r.Distance >= p.tun.EscapeClearance {
			open++
		}
	}
	return open
}

// selfTrailDanger accumulates a negative score for headings that hug the
// agent's own older walls: sampled proximity along the heading, plus a flat
// penalty per side whose short raycast lands on own trail.
func (p *DecisionPolicy) selfTrailDanger(a *AgentState, dir Direction, agents []*AgentState) float64 {
	danger := 0.0

	older := a.olderTrail(selfTrailDangerDrop)
	if len(older) > 0 {
		v := dir.Vec()
		for _, off := range dangerSampleOffsets {
			sample := a.Position.Add(v.Scale(off))
			nearest := -1.0
			for _, seg := range older {
				d := seg.distanceTo(sample)
				if nearest < 0 || d < nearest {
					nearest = d
				}
			}
			if nearest >= 0 && nearest < p.tun.DangerRadius {
				danger -= 10 - 2*nearest
			}
		}
	}

	for _, side := range [2]Direction{dir.Left(), dir.Right()} {
		r := p.collide.Raycast(a.Position, side.Vec(), p.tun.SideProbeDistance, agents, a.ID)
		if r.Kind == CollisionTrail && r.OtherID == a.ID && r.Distance < p.tun.SideProbeWithin {
			danger -= p.tun.SidePenalty
		}
	}
	return danger
}
