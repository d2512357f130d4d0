package game

import "testing"

// testAgent builds a minimal living agent for collision queries.
func testAgent(id int, pos Vec2) *AgentState {
	return &AgentState{
		ID:          id,
		Position:    pos,
		Direction:   North,
		TargetAngle: noTargetAngle,
		IsAlive:     true,
		Speed:       1.0,
	}
}

// withTrail attaches an active trail to an agent.
func withTrail(a *AgentState, segs ...TrailSegment) *AgentState {
	a.Trail = segs
	a.TrailActive = true
	return a
}

func TestCheckCollision_Wall(t *testing.T) {
	ce := NewCollisionEngine(DefaultTuning())
	res := ce.CheckCollision(Vec2{63.7, 0}, 0, nil)
	if !res.Collided || res.Kind != CollisionWall {
		t.Fatalf("(63.7,0) should hit the wall, got %+v", res)
	}
	res = ce.CheckCollision(Vec2{50, 50}, 0, nil)
	if res.Collided {
		t.Fatalf("(50,50) should be clear, got %+v", res)
	}
}

func TestCheckCollision_AgentDistanceThreshold(t *testing.T) {
	ce := NewCollisionEngine(DefaultTuning())
	other := testAgent(1, Vec2{0.8, 0})

	res := ce.CheckCollision(Vec2{0, 0}, 0, []*AgentState{other})
	if !res.Collided || res.Kind != CollisionAgent || res.OtherID != 1 {
		t.Fatalf("distance 0.8 at radius 0.4 should collide, got %+v", res)
	}

	other.Position = Vec2{1.0, 0}
	res = ce.CheckCollision(Vec2{0, 0}, 0, []*AgentState{other})
	if res.Collided {
		t.Fatalf("distance 1.0 should be clear, got %+v", res)
	}

	other.Position = Vec2{0, 0}
	res = ce.CheckCollision(Vec2{0, 0}, 0, []*AgentState{other})
	if !res.Collided || res.Kind != CollisionAgent {
		t.Fatalf("identical positions should always collide, got %+v", res)
	}
}

func TestCheckCollision_DeadAgentNoBodyHit(t *testing.T) {
	ce := NewCollisionEngine(DefaultTuning())
	other := testAgent(1, Vec2{0, 0})
	other.IsAlive = false
	res := ce.CheckCollision(Vec2{0, 0}, 0, []*AgentState{other})
	if res.Collided {
		t.Fatalf("a dead agent's body is not a collider, got %+v", res)
	}
}

func TestCheckCollision_OtherTrailFullyTested(t *testing.T) {
	ce := NewCollisionEngine(DefaultTuning())
	owner := withTrail(testAgent(1, Vec2{40, 40}),
		TrailSegment{Start: Vec2{-10, 0}, End: Vec2{10, 0}, Direction: East},
	)
	res := ce.CheckCollision(Vec2{0, 0.3}, 0, []*AgentState{owner})
	if !res.Collided || res.Kind != CollisionTrail || res.OtherID != 1 {
		t.Fatalf("another agent's trail tests all segments, got %+v", res)
	}
}

func TestCheckCollision_SelfTrailSkipsTwoSegments(t *testing.T) {
	ce := NewCollisionEngine(DefaultTuning())
	old := TrailSegment{Start: Vec2{-10, 0}, End: Vec2{10, 0}, Direction: East}
	recent1 := TrailSegment{Start: Vec2{10, 0}, End: Vec2{10, -10}, Direction: North}
	recent2 := TrailSegment{Start: Vec2{10, -10}, End: Vec2{0, -10}, Direction: West}

	// Only two segments: both are "most recent", so self never collides.
	self := withTrail(testAgent(0, Vec2{0, -10}), recent1, recent2)
	res := ce.CheckCollision(Vec2{10, -5}, 0, []*AgentState{self})
	if res.Collided {
		t.Fatalf("self collision must skip the 2 most recent segments, got %+v", res)
	}

	// A third, older segment is fair game.
	self = withTrail(testAgent(0, Vec2{0, -10}), old, recent1, recent2)
	res = ce.CheckCollision(Vec2{0, 0.3}, 0, []*AgentState{self})
	if !res.Collided || res.Kind != CollisionTrail || res.OtherID != 0 {
		t.Fatalf("older own segment should collide, got %+v", res)
	}

	// The same two recent segments still hit any other agent.
	res = ce.CheckCollision(Vec2{10, -5}, 99, []*AgentState{self})
	if !res.Collided || res.Kind != CollisionTrail {
		t.Fatalf("recent segments are lethal to others, got %+v", res)
	}
}

func TestCheckCollision_InactiveTrailIgnored(t *testing.T) {
	ce := NewCollisionEngine(DefaultTuning())
	owner := testAgent(1, Vec2{40, 40})
	owner.Trail = []TrailSegment{{Start: Vec2{-10, 0}, End: Vec2{10, 0}, Direction: East}}
	// TrailActive stays false until the first turn: spawn lanes are safe.
	res := ce.CheckCollision(Vec2{0, 0}, 0, []*AgentState{owner})
	if res.Collided {
		t.Fatalf("inactive trail must not collide, got %+v", res)
	}
}

func TestCheckCollision_DeadAgentTrailRemains(t *testing.T) {
	ce := NewCollisionEngine(DefaultTuning())
	owner := withTrail(testAgent(1, Vec2{40, 40}),
		TrailSegment{Start: Vec2{-10, 0}, End: Vec2{10, 0}, Direction: East},
	)
	owner.IsAlive = false
	res := ce.CheckCollision(Vec2{0, 0}, 0, []*AgentState{owner})
	if !res.Collided || res.Kind != CollisionTrail {
		t.Fatalf("a doomed agent's trail stays lethal, got %+v", res)
	}
}

func TestCheckCollision_WallWinsOverTrail(t *testing.T) {
	ce := NewCollisionEngine(DefaultTuning())
	owner := withTrail(testAgent(1, Vec2{0, 0}),
		TrailSegment{Start: Vec2{63, -10}, End: Vec2{63, 10}, Direction: South},
	)
	// Point is both out of bounds and inside the trail rect; wall is checked
	// first because it is cheapest and most urgent.
	res := ce.CheckCollision(Vec2{63.7, 0}, 0, []*AgentState{owner})
	if res.Kind != CollisionWall {
		t.Fatalf("wall should win the ordering, got %+v", res)
	}
}
