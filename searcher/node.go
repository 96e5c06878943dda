package searcher

import (
	"spades/game"
	"spades/utils"
)

type node struct {
	state    game.State
	parent   *node
	move     game.Card // Move that led from parent to this node
	mover    int       // Seat that played move
	untried  []game.Card
	children []*node
	visits   int
	wins     float64
}

func newNode(parent *node, move game.Card, mover int, state game.State) *node {
	return &node{
		state:   state,
		parent:  parent,
		move:    move,
		mover:   mover,
		untried: state.LegalMoves(),
	}
}

func (n *node) isTerminal() bool {
	return n.state.IsTerminal() || (len(n.untried) == 0 && len(n.children) == 0)
}

func (n *node) fullyExpanded() bool {
	return len(n.untried) == 0
}

// expand tries the last untried move and attaches the resulting child.
func (n *node) expand() *node {
	last := len(n.untried) - 1
	move := n.untried[last]
	n.untried = n.untried[:last]

	child := newNode(n, move, n.state.Player(), n.state.Play(move))
	n.children = append(n.children, child)
	return child
}

// bestChild returns the child with the highest UCB1 score, first found on ties.
func (n *node) bestChild(c float64) *node {
	policy := newUCB1(c, n.visits)
	i := utils.ArgMax(len(n.children), func(i int) float64 {
		child := n.children[i]
		return policy.evaluate(child.wins, child.visits)
	})
	if i < 0 {
		return nil
	}
	return n.children[i]
}

// mostVisited returns the most visited child, first found on ties.
func (n *node) mostVisited() *node {
	i := utils.ArgMax(len(n.children), func(i int) int {
		return n.children[i].visits
	})
	if i < 0 {
		return nil
	}
	return n.children[i]
}

func (n *node) backup(reward float64) *node {
	n.visits++
	n.wins += reward
	return n.parent
}
