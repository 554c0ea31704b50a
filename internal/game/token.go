package game

// Token is the falling circle bound to a single user note.
type Token struct {
	Lane     int
	Y        int  // Progress along the fall path, 0 is the top
	Active   bool // Still falling and visible
	Consumed bool // Resolved by a hit
	Note     NoteData
}

func NewToken(n NoteData) Token {
	return Token{
		Lane:   LaneOf(n.Pitch),
		Y:      0,
		Active: true,
		Note:   n,
	}
}

// Hittable reports whether the token can still be struck.
func (t Token) Hittable() bool {
	return t.Active && !t.Consumed
}
