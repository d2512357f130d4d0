package game

import (
	"math"
	"testing"
)

// dumpLog prints the tail of the sim log on failure, mirroring what the
// headless report shows.
func dumpLog(t *testing.T, sim *ArenaSim) {
	t.Helper()
	for _, e := range sim.SimLog.Tail(20) {
		t.Log(e.String())
	}
}

// plantWall gives an agent a fixed active trail and parks it dead so the
// engine neither moves it nor drags the segment around. A doomed cycle's wall
// stays lethal, which is exactly what these scenarios lean on.
func plantWall(s *RoundState, id int, seg TrailSegment) {
	a := s.Agent(id)
	a.Position = Vec2{40, 40}
	a.Trail = []TrailSegment{seg}
	a.TrailActive = true
	s.KillCycle(id)
}

func TestScenario_RidingIntoTrailIsLethal(t *testing.T) {
	sim := NewArenaSim(WithPlayingPhase(), WithAgentAt(0, Vec2{0, 0}, East))
	s := sim.State()
	s.TakeControl()
	plantWall(s, 1, TrailSegment{Start: Vec2{4, -10}, End: Vec2{4, 10}, Direction: South})

	sim.RunTicks(30)

	p := s.Player()
	if p.IsAlive {
		dumpLog(t, sim)
		t.Fatalf("player rode straight into a trail and survived at %+v", p.Position)
	}
	found := false
	for _, e := range sim.SimLog.Filter("death", "trail") {
		if e.Agent == "P0" {
			found = true
		}
	}
	if !found {
		dumpLog(t, sim)
		t.Fatal("expected a P0 trail-death entry in the log")
	}
}

func TestScenario_JumpClearsTrail(t *testing.T) {
	sim := NewArenaSim(WithPlayingPhase(), WithAgentAt(0, Vec2{0, 0}, East))
	s := sim.State()
	plantWall(s, 1, TrailSegment{Start: Vec2{4, -10}, End: Vec2{4, 10}, Direction: South})

	// Jump immediately; the arc keeps the player above the height threshold
	// for the whole crossing.
	sim.Engine.Apply(ActionJump)
	if !s.Player().IsJumping {
		t.Fatal("setup: jump did not start")
	}

	sim.RunTicks(30)

	p := s.Player()
	if !p.IsAlive {
		dumpLog(t, sim)
		t.Fatalf("player died crossing a trail mid-jump at %+v", p.Position)
	}
	if p.Position.X <= 4.65 {
		t.Fatalf("player should be past the trail, at x=%v", p.Position.X)
	}
	if p.IsJumping {
		t.Fatal("jump should have landed by now")
	}
}

func TestScenario_LandingInsideTrailIsLethal(t *testing.T) {
	// The same wall moved out so the player reaches it only after the jump
	// arc has dropped back under the height threshold.
	sim := NewArenaSim(WithPlayingPhase(), WithAgentAt(0, Vec2{0, 0}, East))
	s := sim.State()
	plantWall(s, 1, TrailSegment{Start: Vec2{12, -10}, End: Vec2{12, 10}, Direction: South})

	sim.Engine.Apply(ActionJump)
	sim.RunTicks(60)

	if s.Player().IsAlive {
		dumpLog(t, sim)
		t.Fatal("trail beyond the jump arc should still be lethal")
	}
}

func TestScenario_WallRiderDies(t *testing.T) {
	sim := NewArenaSim(WithPlayingPhase(), WithAgentAt(0, Vec2{60, 0}, East))
	s := sim.State()
	s.TakeControl()

	sim.RunTicks(30)

	p := s.Player()
	if p.IsAlive {
		dumpLog(t, sim)
		t.Fatalf("player should have hit the wall, at %+v", p.Position)
	}
	// Elimination happens before the position update: the corpse rests in
	// bounds, short of the boundary.
	if !inBounds(p.Position, sim.Engine.Tuning().ArenaHalf, sim.Engine.Tuning().AgentRadius) {
		t.Fatalf("dead player position %+v ended out of bounds", p.Position)
	}
}

func TestScenario_InvariantsHoldOverLongRun(t *testing.T) {
	sim := NewArenaSim(WithSeed(9), WithPlayingPhase())
	s := sim.State()
	tun := sim.Engine.Tuning()

	for i := 0; i < 2000; i++ {
		sim.RunTicks(1)
		for _, a := range s.Agents {
			if !a.IsAlive {
				continue
			}
			if !inBounds(a.Position, tun.ArenaHalf, tun.AgentRadius) {
				t.Fatalf("tick %d: %s alive out of bounds at %+v", sim.Engine.Tick(), a.Label(), a.Position)
			}
			if !a.IsTurning && !almostEqual(a.Angle, a.Direction.Angle()) {
				t.Fatalf("tick %d: %s angle %v disagrees with direction %s while not turning",
					sim.Engine.Tick(), a.Label(), a.Angle, a.Direction)
			}
			if a.IsTurning == (a.TargetAngle == noTargetAngle) {
				t.Fatalf("tick %d: %s turning flag and target angle out of sync", sim.Engine.Tick(), a.Label())
			}
			if head := a.headSegment(); head == nil || head.End != a.Position {
				t.Fatalf("tick %d: %s trail head detached from position", sim.Engine.Tick(), a.Label())
			}
		}
		if s.Phase == PhaseGameOver {
			break
		}
	}
}

func TestScenario_AutonomousRoundConcludes(t *testing.T) {
	if testing.Short() {
		t.Skip("long round simulation")
	}
	sim := NewArenaSim(WithSeed(42), WithPlayingPhase())
	ticks := sim.RunUntilGameOver(60000)
	s := sim.State()

	if s.Phase != PhaseGameOver {
		dumpLog(t, sim)
		t.Fatalf("round still running after %d ticks", ticks)
	}
	if s.AliveCount() > 1 {
		t.Fatalf("game over with %d agents alive", s.AliveCount())
	}
	total := 0
	for _, score := range s.Scores {
		total += score
	}
	if s.Winner == NoWinner {
		if total != 0 {
			t.Fatalf("draw must award nothing, scores total %d", total)
		}
	} else {
		if total != 1 || s.Scores[s.Winner] != 1 {
			t.Fatalf("winner %d should hold the round's single point, scores %v", s.Winner, s.Scores)
		}
		if !s.Agent(s.Winner).IsAlive {
			t.Fatal("recorded winner is not the survivor")
		}
	}
}

func TestScenario_DeadAgentFrozen(t *testing.T) {
	sim := NewArenaSim(WithPlayingPhase(), WithAgentAt(0, Vec2{60, 0}, East))
	s := sim.State()
	s.TakeControl()
	sim.RunTicks(30)

	p := s.Player()
	if p.IsAlive {
		t.Fatal("setup: player should be dead against the wall")
	}
	frozen := p.Position
	trailLen := len(p.Trail)

	sim.RunTicks(60)
	if p.Position != frozen || len(p.Trail) != trailLen {
		t.Fatal("a dead cycle must not move or grow its trail")
	}
	if math.Abs(sim.Engine.JumpOffset(0)) > 0 {
		t.Fatal("a dead cycle has no jump height")
	}
}
