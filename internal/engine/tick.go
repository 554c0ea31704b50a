package engine

import (
	"git.lost.host/meutraa/keyfall/internal/game"
)

// Tick advances the simulation by one clock period. It returns the new state
// and a play request for every autonomous note that started during the tick.
func Tick(s game.State, cfg Config) (game.State, []game.PlayRequest) {
	prev := s.Time
	now := game.RoundMs(prev + cfg.TickPeriod)

	var plays []game.PlayRequest

	// Autonomous notes sound on their own. Every note starting inside the
	// tick is stamped with the tick's start time.
	auto := make([]game.NoteData, 0, len(s.AutoNotes))
	for _, note := range s.AutoNotes {
		if note.End <= prev {
			continue
		}
		if !note.Played && note.Start >= prev && note.Start < now {
			note = note.MarkPlayed(prev)
			plays = append(plays, cfg.Scorer.Request(note, prev))
		}
		auto = append(auto, note)
	}

	// Tokens appear LeadTime ahead of their note so there is time to react
	lo, hi := game.RoundMs(prev+cfg.LeadTime), game.RoundMs(now+cfg.LeadTime)
	var spawned []game.Token
	for _, note := range s.UserNotes {
		if note.Duration() <= 0 {
			continue
		}
		if note.Start >= lo && note.Start < hi {
			spawned = append(spawned, game.NewToken(note))
		}
	}

	tokens := make([]game.Token, 0, len(s.Tokens)+len(spawned))
	for _, token := range s.Tokens {
		// Hit or fallen tokens were drawn once in their final place
		if token.Consumed || !token.Active {
			continue
		}
		if token.Y >= cfg.PathLength {
			token.Active = false
		} else {
			token.Y++
		}
		tokens = append(tokens, token)
	}
	tokens = append(tokens, spawned...)

	next := s
	next.Time = now
	next.AutoNotes = auto
	next.Tokens = tokens
	next.Ended = s.Ended || (s.FinalNote.End >= 0 && now > s.FinalNote.End)
	return next, plays
}
