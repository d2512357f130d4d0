package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay constant in one overridable block.
// The zero value is not usable; start from DefaultTuning and overlay a YAML
// file on top when one is provided. Exact values are product tuning, not
// contract; tests that depend on a number pin it explicitly.
type Tuning struct {
	// Arena geometry. The playfield is the square [-ArenaHalf, ArenaHalf]^2;
	// collision uses the boundary inset by AgentRadius.
	ArenaHalf   float64 `yaml:"arena_half"`
	AgentRadius float64 `yaml:"agent_radius"`
	TrailWidth  float64 `yaml:"trail_width"`

	// Movement.
	BaseSpeed   float64 `yaml:"base_speed"`    // world units per second at speed multiplier 1
	TurnSpeed   float64 `yaml:"turn_speed"`    // radians per millisecond while turning
	TurnSnapEps float64 `yaml:"turn_snap_eps"` // remaining angular delta below which a turn completes

	// Jumping.
	JumpDurationMs      float64 `yaml:"jump_duration_ms"`
	JumpCooldownMs      float64 `yaml:"jump_cooldown_ms"`
	JumpHeight          float64 `yaml:"jump_height"`           // peak of the jump arc
	JumpHeightThreshold float64 `yaml:"jump_height_threshold"` // airborne above this skips collision
	JumpClearRange      float64 `yaml:"jump_clear_range"`      // a trail hazard closer than this is jumpable

	// Fixed-timestep loop.
	FixedStepMs        float64 `yaml:"fixed_step_ms"`
	MaxFrameDeltaMs    float64 `yaml:"max_frame_delta_ms"`
	CountdownStart     int     `yaml:"countdown_start"`
	CountdownTickMs    float64 `yaml:"countdown_tick_ms"`
	AutoRestartDelayMs float64 `yaml:"auto_restart_delay_ms"`

	// Autonomous decision policy.
	DecisionIntervalMs float64 `yaml:"decision_interval_ms"`
	LookAhead          float64 `yaml:"look_ahead"`         // forward raycasts probe 2x this
	MinTurnDistance    float64 `yaml:"min_turn_distance"`  // forward hazard closer than this forces a maneuver
	RaycastStep        float64 `yaml:"raycast_step"`       // march step for trail/agent sensing
	EscapeProjection   float64 `yaml:"escape_projection"`  // units projected along a candidate heading
	EscapeClearance    float64 `yaml:"escape_clearance"`   // a cardinal counts as an escape path past this
	DangerRadius       float64 `yaml:"danger_radius"`      // own-trail proximity that starts penalising
	SideProbeDistance  float64 `yaml:"side_probe_distance"`
	SideProbeWithin    float64 `yaml:"side_probe_within"` // side own-trail hit closer than this penalises
	SidePenalty        float64 `yaml:"side_penalty"`

	// Candidate scoring weights and decision margins.
	ForwardWeight     float64 `yaml:"forward_weight"`
	EscapeWeight      float64 `yaml:"escape_weight"`
	DangerWeight      float64 `yaml:"danger_weight"`
	TurnMargin        float64 `yaml:"turn_margin"`         // a turn must beat forward by this to win outright
	CloseTurnMargin   float64 `yaml:"close_turn_margin"`   // smaller margin once forward is under LookAhead
	BoxedEscapeLimit  int     `yaml:"boxed_escape_limit"`  // fewer escape paths than this is "boxed in"
	BoxedForwardLimit float64 `yaml:"boxed_forward_limit"` // boxed-in check only applies under this distance
	RandomJumpChance  float64 `yaml:"random_jump_chance"`  // spontaneous jump probability per decision

	// Round composition.
	AgentCount int `yaml:"agent_count"` // one player + (AgentCount-1) autonomous opponents
}

// DefaultTuning returns the baseline constants the game ships with.
func DefaultTuning() *Tuning {
	return &Tuning{
		ArenaHalf:   64,
		AgentRadius: 0.4,
		TrailWidth:  0.5,

		BaseSpeed:   20,
		TurnSpeed:   0.012, // a 90° turn completes in ~130ms
		TurnSnapEps: 0.01,

		JumpDurationMs:      500,
		JumpCooldownMs:      1500,
		JumpHeight:          2.0,
		JumpHeightThreshold: 0.5,
		JumpClearRange:      8,

		FixedStepMs:        1000.0 / 60.0,
		MaxFrameDeltaMs:    250,
		CountdownStart:     3,
		CountdownTickMs:    1000,
		AutoRestartDelayMs: 2000,

		DecisionIntervalMs: 60,
		LookAhead:          15,
		MinTurnDistance:    5,
		RaycastStep:        0.5,
		EscapeProjection:   8,
		EscapeClearance:    8,
		DangerRadius:       3,
		SideProbeDistance:  10,
		SideProbeWithin:    5,
		SidePenalty:        5,

		ForwardWeight:     2.0,
		EscapeWeight:      8.0,
		DangerWeight:      1.0,
		TurnMargin:        8,
		CloseTurnMargin:   3,
		BoxedEscapeLimit:  2,
		BoxedForwardLimit: 20,
		RandomJumpChance:  0.005,

		AgentCount: 4,
	}
}

// LoadTuning reads a YAML overlay and applies it on top of the defaults.
// Fields absent from the file keep their default values.
func LoadTuning(path string) (*Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tuning file %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("tuning file %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects values that would break the simulation outright.
func (t *Tuning) Validate() error {
	switch {
	case t.ArenaHalf <= 0:
		return fmt.Errorf("arena_half must be positive, got %v", t.ArenaHalf)
	case t.AgentRadius <= 0 || t.AgentRadius >= t.ArenaHalf:
		return fmt.Errorf("agent_radius must be in (0, arena_half), got %v", t.AgentRadius)
	case t.BaseSpeed <= 0:
		return fmt.Errorf("base_speed must be positive, got %v", t.BaseSpeed)
	case t.FixedStepMs <= 0:
		return fmt.Errorf("fixed_step_ms must be positive, got %v", t.FixedStepMs)
	case t.RaycastStep <= 0:
		return fmt.Errorf("raycast_step must be positive, got %v", t.RaycastStep)
	case t.AgentCount < 2:
		return fmt.Errorf("agent_count must be at least 2, got %d", t.AgentCount)
	}
	return nil
}
