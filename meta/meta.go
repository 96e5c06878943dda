// meta/meta.go
package meta

import "spades/searcher"

// SEATS defines the number of players at the table.
const SEATS = 4

// ROUNDS defines the size of the first round. Rounds shrink by one card down to one.
const ROUNDS = 7

// MCTS_BUDGET defines the wall-clock budget of one MCTS decision.
const MCTS_BUDGET = searcher.DefaultDuration

// EXPLORATION defines the UCB1 exploration constant.
const EXPLORATION = 1.4

// SAMPLES defines the number of playouts per action for Expectimax.
const SAMPLES = 200

// BID_REWARD defines the search utility of a met bid.
const BID_REWARD = 10.0

// STRATEGY defines the strategy of a seat without configuration.
const STRATEGY = "mcts"

// PARALLEL_GAMES defines how many experiment games run at once.
const PARALLEL_GAMES = 8
