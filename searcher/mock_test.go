package searcher

import "spades/game"

// mockState is a node of a hand-built game tree. Moves are plain cards used as labels.
type mockState struct {
	player  int
	moves   []game.Card
	next    map[game.Card]*mockState
	utility []float64
	made    []bool
}

func (s *mockState) Player() int {
	return s.player
}

func (s *mockState) LegalMoves() []game.Card {
	return append([]game.Card(nil), s.moves...)
}

func (s *mockState) Play(move game.Card) game.State {
	next, ok := s.next[move]
	if !ok {
		panic("illegal mock move " + move.String())
	}
	return next
}

func (s *mockState) IsTerminal() bool {
	return len(s.moves) == 0
}

func (s *mockState) Utility(reward float64) []float64 {
	return s.utility
}

func (s *mockState) Made(seat int) bool {
	return s.made != nil && s.made[seat]
}

func (s *mockState) Hash() game.StateHash {
	return 0
}

var (
	moveA = game.MustParseCards("AS")[0]
	moveB = game.MustParseCards("KS")[0]
	moveC = game.MustParseCards("QS")[0]
	moveD = game.MustParseCards("JS")[0]
)

// decision builds an inner node where player chooses between the given children.
func decision(player int, children map[game.Card]*mockState) *mockState {
	s := &mockState{player: player, next: children}
	for _, move := range []game.Card{moveA, moveB, moveC, moveD} {
		if _, ok := children[move]; ok {
			s.moves = append(s.moves, move)
		}
	}
	return s
}

func leaf(utility ...float64) *mockState {
	made := make([]bool, len(utility))
	for i, u := range utility {
		made[i] = u > 0
	}
	return &mockState{utility: utility, made: made}
}
