package game

// State is the whole game at one instant. Every accepted action produces a
// new State; slices held by a published State are never written to again.
type State struct {
	Ended     bool
	Tokens    []Token
	AutoNotes []NoteData // Autonomous notes not yet expired
	UserNotes []NoteData
	Time      float64 // Simulated seconds
	FinalNote NoteData
	Score     int
	Paused    bool
}

// ActiveTokens returns the tokens that should be drawn.
func (s State) ActiveTokens() []Token {
	active := make([]Token, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		if t.Active {
			active = append(active, t)
		}
	}
	return active
}
