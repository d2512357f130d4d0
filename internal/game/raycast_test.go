package game

import "testing"

func TestRaycast_ClearLaneClampsToMaxDistance(t *testing.T) {
	ce := NewCollisionEngine(DefaultTuning())
	res := ce.Raycast(Vec2{0, 0}, East.Vec(), 10, nil, 0)
	if res.Distance != 10 || res.Kind != CollisionNone {
		t.Fatalf("wall is far away: want distance exactly 10 and no hit, got %+v", res)
	}
}

func TestRaycast_AnalyticWallDistance(t *testing.T) {
	ce := NewCollisionEngine(DefaultTuning())
	// Inset boundary is at 63.6; from the origin heading east that is the
	// exact analytic distance, not a march-step multiple.
	res := ce.Raycast(Vec2{0, 0}, East.Vec(), 100, nil, 0)
	if res.Kind != CollisionWall {
		t.Fatalf("expected wall hit, got %+v", res)
	}
	if !almostEqual(res.Distance, 63.6) {
		t.Fatalf("wall distance = %v, want 63.6", res.Distance)
	}
}

func TestRaycast_TrailHitWithinStepResolution(t *testing.T) {
	tun := DefaultTuning()
	ce := NewCollisionEngine(tun)
	owner := withTrail(testAgent(1, Vec2{40, 40}),
		TrailSegment{Start: Vec2{5, -5}, End: Vec2{5, 5}, Direction: South},
	)
	res := ce.Raycast(Vec2{0, 0}, East.Vec(), 30, []*AgentState{owner}, 0)
	if res.Kind != CollisionTrail || res.OtherID != 1 {
		t.Fatalf("expected trail hit, got %+v", res)
	}
	// The expanded rect face is at 5 - (trailWidth/2 + radius) = 4.35; the
	// march finds it within one step.
	if res.Distance < 4.35-tun.RaycastStep || res.Distance > 4.35+tun.RaycastStep {
		t.Fatalf("trail hit distance = %v, want ~4.35 ± one march step", res.Distance)
	}
}

func TestRaycast_SelfTrailSkipsThreeSegments(t *testing.T) {
	ce := NewCollisionEngine(DefaultTuning())
	blocking := TrailSegment{Start: Vec2{5, -5}, End: Vec2{5, 5}, Direction: South}
	filler1 := TrailSegment{Start: Vec2{40, 40}, End: Vec2{41, 40}, Direction: East}
	filler2 := TrailSegment{Start: Vec2{42, 40}, End: Vec2{43, 40}, Direction: East}
	filler3 := TrailSegment{Start: Vec2{44, 40}, End: Vec2{45, 40}, Direction: East}

	// Exactly three segments: all recent, all skipped for a self raycast.
	self := withTrail(testAgent(0, Vec2{0, 0}), blocking, filler1, filler2)
	res := ce.Raycast(Vec2{0, 0}, East.Vec(), 30, []*AgentState{self}, 0)
	if res.Kind == CollisionTrail {
		t.Fatalf("self raycast must skip the 3 most recent segments, got %+v", res)
	}

	// A fourth segment makes the oldest visible again.
	self = withTrail(testAgent(0, Vec2{0, 0}), blocking, filler1, filler2, filler3)
	res = ce.Raycast(Vec2{0, 0}, East.Vec(), 30, []*AgentState{self}, 0)
	if res.Kind != CollisionTrail || res.OtherID != 0 {
		t.Fatalf("own older segment should be sensed, got %+v", res)
	}
}

func TestRaycast_AgentHit(t *testing.T) {
	ce := NewCollisionEngine(DefaultTuning())
	other := testAgent(1, Vec2{6, 0})
	res := ce.Raycast(Vec2{0, 0}, East.Vec(), 30, []*AgentState{other}, 0)
	if res.Kind != CollisionAgent || res.OtherID != 1 {
		t.Fatalf("expected agent hit, got %+v", res)
	}
	if res.Distance < 5 || res.Distance > 6 {
		t.Fatalf("agent hit distance = %v, want within (5,6)", res.Distance)
	}
}

func TestRaycast_DegenerateInputs(t *testing.T) {
	ce := NewCollisionEngine(DefaultTuning())

	res := ce.Raycast(Vec2{0, 0}, Vec2{0, 0}, 30, nil, 0)
	if res.Distance != 0 || res.Kind != CollisionNone {
		t.Fatalf("zero direction: want zero/no-hit, got %+v", res)
	}

	res = ce.Raycast(Vec2{0, 0}, East.Vec(), 0, nil, 0)
	if res.Distance != 0 || res.Kind != CollisionNone {
		t.Fatalf("zero range: want zero/no-hit, got %+v", res)
	}

	res = ce.Raycast(Vec2{0, 0}, East.Vec(), -5, nil, 0)
	if res.Distance != 0 || res.Kind != CollisionNone {
		t.Fatalf("negative range: want zero/no-hit, got %+v", res)
	}
}
