package game

import "strconv"

// Action is a single entry of the merged clock and keyboard stream.
type Action string

const (
	ActionTick  Action = "tick"
	ActionPause Action = "pause-toggle"
)

const lanePrefix = "lane-"

// LaneAction returns the action for pressing the key of the given lane.
func LaneAction(lane int) Action {
	return Action(lanePrefix + strconv.Itoa(lane))
}

// Lane returns the lane index for a lane action.
func (a Action) Lane() (int, bool) {
	s := string(a)
	if len(s) <= len(lanePrefix) || s[:len(lanePrefix)] != lanePrefix {
		return 0, false
	}
	lane, err := strconv.Atoi(s[len(lanePrefix):])
	if nil != err || lane < 0 || lane >= NLanes {
		return 0, false
	}
	return lane, true
}

// Stamped is an action together with the number of ticks processed before it.
type Stamped struct {
	Tick   uint64
	Action Action
}

// PlayRequest asks the audio side to sound a note.
type PlayRequest struct {
	Instrument string
	Pitch      int
	Velocity   int
	Offset     float64 // Trigger time minus the note start, in seconds
	Duration   float64 // In seconds
	Garbled    bool    // Pitch and Duration were substituted for a mistimed note
}
