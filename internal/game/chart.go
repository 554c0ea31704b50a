package game

import "errors"

var ErrEmptyScore = errors.New("score contains no notes")

// Partition splits notes into user played and autonomous notes,
// keeping the original order within each.
func Partition(notes []NoteData) (user []NoteData, auto []NoteData) {
	user = []NoteData{}
	auto = []NoteData{}
	for _, n := range notes {
		if n.UserPlayed {
			user = append(user, n)
		} else {
			auto = append(auto, n)
		}
	}
	return user, auto
}

// FinalNote returns the note that ends last. On ties the first one wins.
func FinalNote(notes []NoteData) (NoteData, error) {
	if len(notes) == 0 {
		return NoteData{}, ErrEmptyScore
	}
	final := notes[0]
	for _, n := range notes[1:] {
		if n.End > final.End {
			final = n
		}
	}
	return final, nil
}
