package query

import (
	"crypto/sha256"
	"sync"

	"github.com/platformdrive/drivecore/pkg/statetransition"
)

// TransitionHash identifies a submitted transition by the hash of its
// canonicalized bytes and signature, the same pair statetransition.Apply
// authenticates against. Framing (how a caller's raw request bytes decode
// into a Transition) is an application-layer concern outside this
// package's scope — Broadcast takes an already-decoded Transition.
type TransitionHash [sha256.Size]byte

func hashTransition(t *statetransition.Transition) TransitionHash {
	h := sha256.New()
	h.Write(t.CanonicalBytes)
	h.Write(t.Signature)
	var out TransitionHash
	copy(out[:], h.Sum(nil))
	return out
}

// TransitionOutcome is the recorded result of one submitted transition,
// kept so wait_for_state_transition_result can answer by hash after the
// fact.
type TransitionOutcome struct {
	Hash   TransitionHash
	Result statetransition.Result
	Err    error
}

// Submission tracks broadcast transitions and their outcomes, applying
// each against a statetransition.Context the caller owns and supplies
// per block. It does not drive block production itself — the caller-supplied
// block order is authoritative — it only records the outcome of each Apply
// call so a later wait_for_state_transition_result
// lookup by hash can answer it.
type Submission struct {
	mu       sync.Mutex
	outcomes map[TransitionHash]TransitionOutcome
}

func NewSubmission() *Submission {
	return &Submission{outcomes: make(map[TransitionHash]TransitionOutcome)}
}

// Broadcast applies t against c and records the outcome under t's hash,
// returning both the hash and whatever statetransition.Apply returned.
func (s *Submission) Broadcast(c *statetransition.Context, t *statetransition.Transition) (TransitionHash, statetransition.Result, error) {
	hash := hashTransition(t)
	result, err := statetransition.Apply(c, t)

	s.mu.Lock()
	s.outcomes[hash] = TransitionOutcome{Hash: hash, Result: result, Err: err}
	s.mu.Unlock()

	return hash, result, err
}

// WaitForResult returns the recorded outcome of a previously broadcast
// transition. There is no actual waiting here: the core never observes
// wall clock, so polling/blocking until a result lands is the orchestrator's
// responsibility, not this package's.
func (s *Submission) WaitForResult(hash TransitionHash) (TransitionOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	outcome, ok := s.outcomes[hash]
	if !ok {
		return TransitionOutcome{}, ErrUnknownTransition
	}
	return outcome, nil
}
