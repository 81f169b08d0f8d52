package app

import (
	"github.com/platformdrive/drivecore/pkg/index"
	"github.com/platformdrive/drivecore/pkg/query"
	"github.com/platformdrive/drivecore/pkg/statetransition"
)

// BlockOutcome is one transition's result within a processed block, paired
// with the hash Submission recorded it under.
type BlockOutcome struct {
	Hash   query.TransitionHash
	Result statetransition.Result
	Err    error
}

// ProcessBlock applies transitions one at a time, in the caller-supplied
// order: that order is authoritative, and there is no intra-block
// parallelism visible to the deterministic state. statetransition.Apply
// already commits or fully rolls back the working tree around each
// transition, so this loop's only job is sequencing and recording
// outcomes — it never batches multiple transitions into one commit.
//
// A transition that fails does not halt the block: its failure is
// terminal for that transition alone, and processing continues with the
// next transition.
func (p *Platform) ProcessBlock(blockMillis int64, transitions []*statetransition.Transition) []BlockOutcome {
	c := p.transitionContext(blockMillis)

	outcomes := make([]BlockOutcome, 0, len(transitions))
	for _, t := range transitions {
		c.IndexCache = index.NewCache()
		hash, result, err := p.Submission.Broadcast(c, t)
		outcomes = append(outcomes, BlockOutcome{Hash: hash, Result: result, Err: err})
	}
	return outcomes
}
