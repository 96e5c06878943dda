package game

type StateHash uint64

// State should be immutable - operations on State always return a new copy.
// Searchers only see a game through this interface.
type State interface {
	// Player returns the seat to act next
	Player() int
	LegalMoves() []Card
	Play(Card) State
	IsTerminal() bool
	// Utility returns one terminal reward per seat, reward for a met bid
	Utility(reward float64) []float64
	// Made reports whether seat won exactly its bid
	Made(seat int) bool
	Hash() StateHash
}
