package game

import (
	"fmt"
	"math"
)

// noTargetAngle is the sentinel for "not currently turning".
const noTargetAngle = -1

// AgentState is the canonical per-agent simulation state. Entries are never
// added or removed mid-round; elimination sets IsAlive false and leaves the
// record (and its trail) in place.
type AgentState struct {
	ID       int
	IsPlayer bool

	Position    Vec2
	Angle       float64 // continuous heading, radians, 0 = -Z, clockwise
	TargetAngle float64 // noTargetAngle when not turning
	IsTurning   bool
	Direction   Direction // coarse heading; snaps at turn start, not turn end

	IsAlive bool
	Speed   float64 // multiplier on BaseSpeed

	// Trail. The last element is the live head segment whose End tracks the
	// agent's position. TrailActive stays false until the first turn: spawn
	// lanes are safe by convention.
	Trail       []TrailSegment
	TrailActive bool

	// Jump state, all on the simulation clock (milliseconds).
	IsJumping     bool
	JumpStartTime float64
	LastJumpTime  float64 // negative until the first jump
}

// Label is the short identifier used in logs and reports: P0 for the player,
// A<n> for autonomous opponents.
func (a *AgentState) Label() string {
	if a.IsPlayer {
		return fmt.Sprintf("P%d", a.ID)
	}
	return fmt.Sprintf("A%d", a.ID)
}

// JumpHeight returns the agent's current height above the floor. The arc is
// a half sine over the jump duration.
func (a *AgentState) JumpHeight(now float64, tun *Tuning) float64 {
	if !a.IsJumping || tun.JumpDurationMs <= 0 {
		return 0
	}
	t := (now - a.JumpStartTime) / tun.JumpDurationMs
	if t < 0 || t > 1 {
		return 0
	}
	return tun.JumpHeight * math.Sin(math.Pi*t)
}

// CanJump reports whether a new jump may start now.
func (a *AgentState) CanJump(now float64, tun *Tuning) bool {
	if a.IsJumping {
		return false
	}
	return a.LastJumpTime < 0 || now-a.LastJumpTime >= tun.JumpCooldownMs
}

// headSegment returns the live trail segment, or nil before spawn setup.
func (a *AgentState) headSegment() *TrailSegment {
	if len(a.Trail) == 0 {
		return nil
	}
	return &a.Trail[len(a.Trail)-1]
}

// olderTrail returns the trail with the most recent keep segments dropped,
// used by the decision policy to score proximity to walls the agent is not
// presently emitting.
func (a *AgentState) olderTrail(drop int) []TrailSegment {
	if len(a.Trail) <= drop {
		return nil
	}
	return a.Trail[:len(a.Trail)-drop]
}
