package automaton

// BA is a standard Büchi automaton (spec §3): a single acceptance set,
// membership in which must recur infinitely often along an accepting run.
type BA struct {
	NumStates int
	Alphabet  Alphabet
	Trans     [][]Edge
	Init      []int
	Accept    AcceptanceSet

	StateLabel []string
}

// NewBA allocates an empty BA with n states.
func NewBA(n int, alphabet Alphabet) *BA {
	return &BA{
		NumStates:  n,
		Alphabet:   alphabet,
		Trans:      make([][]Edge, n),
		Accept:     make(AcceptanceSet, n),
		StateLabel: make([]string, n),
	}
}

// AddEdge records a transition q --symbol--> to.
func (b *BA) AddEdge(q int, symbol Symbol, to int) {
	b.Trans[q] = append(b.Trans[q], Edge{Symbol: symbol, To: to})
}
