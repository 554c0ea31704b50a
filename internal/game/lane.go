package game

const NLanes = 4

// LaneOf maps a pitch onto one of the lanes. Anything that would land
// outside the lanes goes to lane 0 so a bad score never stops the game.
func LaneOf(pitch int) int {
	lane := pitch % NLanes
	if lane < 0 || lane >= NLanes {
		return 0
	}
	return lane
}
