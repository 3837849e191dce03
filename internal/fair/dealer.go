package fair

import "sync"

// Outcome is the immutable record of one seed consumption. SequenceNumber
// is the chain index the bet was played at; ServerSeed is the digest
// revealed by that bet.
type Outcome struct {
	SequenceNumber int64   `json:"sequence_number"`
	ServerSeed     string  `json:"server_seed"`
	ClientSeed     string  `json:"client_seed"`
	Roll           float64 `json:"roll"`
}

// Dealer owns the live cursor into a seed chain. It is an instance, not a
// process-wide singleton, so independent tables can each run their own
// chain. The chain itself is read-only once loaded; only the cursor
// mutates, and the mutex serializes read-compute-advance as one unit so
// no two bets ever consume the same index.
type Dealer struct {
	mu           sync.Mutex
	chain        Chain
	gameIndex    int64
	prevRevealed string
}

// NewDealer validates the chain and returns a ready dealer. The cursor
// starts at index 1; the anchor at index 0 is already public. A dealer
// never exists in a half-initialized state: if validation fails there is
// no dealer.
func NewDealer(chain Chain) (*Dealer, error) {
	if err := chain.Validate(); err != nil {
		return nil, err
	}
	return &Dealer{
		chain:        chain,
		gameIndex:    1,
		prevRevealed: chain[0],
	}, nil
}

// ConsumeNext reveals the seed at the current cursor, computes its roll,
// and advances. Each call spends exactly one chain index; the call is
// deliberately not idempotent. When no seeds remain it returns
// ErrChainExhausted and the cursor stays put — the chain is done and the
// operator must provision a new one.
//
// The sequence number is always the dealer's own cursor, never an input:
// letting the caller pick it would let them pick a favorable seed.
func (d *Dealer) ConsumeNext(clientSeed string) (Outcome, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gameIndex >= int64(len(d.chain)) {
		return Outcome{}, ErrChainExhausted
	}

	seed := d.chain[d.gameIndex]
	n := d.gameIndex

	roll, err := RollFromSeed(seed, clientSeed, n)
	if err != nil {
		// Cursor untouched: a failed roll must not burn a seed.
		return Outcome{}, err
	}

	d.prevRevealed = seed
	d.gameIndex++

	return Outcome{
		SequenceNumber: n,
		ServerSeed:     seed,
		ClientSeed:     clientSeed,
		Roll:           roll,
	}, nil
}

// CurrentAnchor returns the most recently revealed seed — before any bet,
// the original public anchor. This is the value a client checks the next
// reveal against.
func (d *Dealer) CurrentAnchor() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.prevRevealed
}

// GameIndex returns the sequence number the next bet will consume.
func (d *Dealer) GameIndex() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gameIndex
}

// Remaining returns how many seeds are left to play.
func (d *Dealer) Remaining() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.chain)) - d.gameIndex
}
