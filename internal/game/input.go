package game

// Action is a discrete named input delivered by the input collaborator. The
// collaborator owns key-repeat suppression and focus-loss release; the engine
// only sees clean edge-triggered actions.
type Action int

const (
	ActionTurnLeft Action = iota
	ActionTurnRight
	ActionJump
	ActionToggleCamera
	ActionPause
	ActionConfirm
)

func (a Action) String() string {
	switch a {
	case ActionTurnLeft:
		return "turn_left"
	case ActionTurnRight:
		return "turn_right"
	case ActionJump:
		return "jump"
	case ActionToggleCamera:
		return "toggle_camera"
	case ActionPause:
		return "pause"
	case ActionConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Apply feeds one input action into the simulation. Steering and jump inputs
// latch the human in control for the rest of the session; everything else
// leaves autonomous mode alone.
func (e *Engine) Apply(action Action) {
	s := e.state
	switch action {
	case ActionTurnLeft, ActionTurnRight, ActionJump:
		if s.Phase != PhasePlaying {
			return
		}
		if s.IsAutonomousMode {
			s.TakeControl()
			e.log.Add(e.tick, "--", "phase", "take_control", "human input", 0)
		}
		player := s.Player()
		if player == nil || !player.IsAlive {
			return
		}
		switch action {
		case ActionTurnLeft:
			from := player.Direction
			s.StartTurn(player.ID, true)
			if player.Direction != from {
				e.log.Add(e.tick, player.Label(), "turn", "start", from.String()+" → "+player.Direction.String(), 0)
			}
		case ActionTurnRight:
			from := player.Direction
			s.StartTurn(player.ID, false)
			if player.Direction != from {
				e.log.Add(e.tick, player.Label(), "turn", "start", from.String()+" → "+player.Direction.String(), 0)
			}
		case ActionJump:
			s.StartJump(player.ID, e.simTime, e.tun)
			if player.IsJumping {
				e.log.Add(e.tick, player.Label(), "jump", "start", "", 0)
			}
		}

	case ActionToggleCamera:
		next := CameraFollow
		if s.CameraMode == CameraFollow {
			next = CameraOverview
		}
		s.SetCameraMode(next)

	case ActionPause:
		switch s.Phase {
		case PhasePlaying:
			s.Pause()
			e.log.Add(e.tick, "--", "phase", "change", "playing → paused", 0)
		case PhasePaused:
			s.Resume()
			e.log.Add(e.tick, "--", "phase", "change", "paused → playing", 0)
		}

	case ActionConfirm:
		if s.Phase == PhaseGameOver {
			e.Restart()
		}
	}
}
