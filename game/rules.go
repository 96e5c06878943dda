package game

// Slot holds the card a seat played in the current trick, if any.
type Slot struct {
	Card   Card
	Filled bool
}

// Trick has one slot per seat, indexed by seat.
type Trick []Slot

func NewTrick(seats int) Trick {
	return make(Trick, seats)
}

// Played counts filled slots.
func (t Trick) Played() int {
	n := 0
	for _, slot := range t {
		if slot.Filled {
			n++
		}
	}
	return n
}

func (t Trick) Complete() bool {
	return t.Played() == len(t)
}

func (t Trick) Cards() CardSet {
	var set CardSet
	for _, slot := range t {
		if slot.Filled {
			set = set.Add(slot.Card)
		}
	}
	return set
}

// Leader returns the seat that led the trick, found by walking back from
// the seat to act by the number of cards already played.
func (t Trick) Leader(current int) int {
	n := len(t)
	return ((current-t.Played())%n + n) % n
}

// LegalCards computes the cards the seat to act may play out of pool.
//
// Leading: trump may not be led before it is broken unless the pool is all
// trump. Following: the lead suit must be followed when possible, otherwise
// any card may be played.
func LegalCards(pool []Card, trick Trick, current int, trumpBroken bool) []Card {
	if len(pool) == 0 {
		return nil
	}

	if trick.Played() == 0 {
		if trumpBroken {
			return append([]Card(nil), pool...)
		}
		legal := filter(pool, func(c Card) bool { return !c.IsTrump() })
		if len(legal) == 0 { // Forced to lead trump
			return append([]Card(nil), pool...)
		}
		return legal
	}

	lead := trick[trick.Leader(current)].Card.Suit
	legal := filter(pool, func(c Card) bool { return c.Suit == lead })
	if len(legal) == 0 { // Void in the lead suit
		return append([]Card(nil), pool...)
	}
	return legal
}

func filter(cards []Card, keep func(Card) bool) []Card {
	var kept []Card
	for _, c := range cards {
		if keep(c) {
			kept = append(kept, c)
		}
	}
	return kept
}

// TrickWinner returns the seat that wins a complete trick led by leader.
// Trump beats any other suit, otherwise only the suit currently winning can
// take the trick with a higher rank.
func TrickWinner(trick Trick, leader int) int {
	n := len(trick)
	if n == 0 || !trick[leader].Filled {
		panic("cannot resolve a trick without the leader's card")
	}

	winner := leader
	best := trick[leader].Card
	for i := 1; i < n; i++ {
		seat := (leader + i) % n
		slot := trick[seat]
		if !slot.Filled {
			panic("cannot resolve an incomplete trick")
		}

		card := slot.Card
		switch {
		case card.IsTrump() && !best.IsTrump():
			winner, best = seat, card
		case card.Suit == best.Suit && card.Rank > best.Rank:
			winner, best = seat, card
		}
	}
	return winner
}
