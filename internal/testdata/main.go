package testdata

import (
	"fmt"
	"strings"

	"git.lost.host/meutraa/keyfall/internal/rng"
)

// Score is a short song with both kinds of notes.
const Score = `user_played,instrument,velocity,pitch,start,end
True,piano,100,60,2.00,2.50
False,bass,90,36,1.00,1.50
True,piano,100,61,2.504,2.75
False,drums,127,42,0,0.1
True,piano,80,63.0,3.25,3.25
False,bass,90,38,3.00,4.00
`

// Generate returns a score of n rows with a pseudo random mix of user and
// autonomous notes, and the user_played flag of every row.
func Generate(n int, seed int64) (string, []bool) {
	var b strings.Builder
	b.WriteString("user_played,instrument,velocity,pitch,start,end\n")
	flags := make([]bool, n)
	h := seed
	for i := 0; i < n; i++ {
		h = rng.Hash(h)
		user := rng.Scale(h) < 0.5
		flags[i] = user
		played := "False"
		if user {
			played = "True"
		}
		h = rng.Hash(h)
		pitch := 21 + int(rng.Scale(h)*87)
		start := float64(i) * 0.25
		fmt.Fprintf(&b, "%v,inst%v,%v,%v,%.2f,%.2f\n", played, i%3, 64+i%64, pitch, start, start+0.2)
	}
	return b.String(), flags
}
