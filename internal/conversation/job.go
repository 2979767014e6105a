package conversation

import (
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// PruneJobKind is the River kind of the conversation pruning job.
const PruneJobKind = "PruneConversations"

// PruneJobArgs asks a worker to delete conversations idle for longer than the
// store TTL.
type PruneJobArgs struct {
	// uniqueJobPeriod collapses prune requests enqueued within the same window.
	uniqueJobPeriod time.Duration
}

// NewPruneJobArgs returns prune arguments unique within period. A zero period
// disables uniqueness.
func NewPruneJobArgs(period time.Duration) PruneJobArgs {
	return PruneJobArgs{uniqueJobPeriod: period}
}

// Kind returns the River job kind used to register and dispatch the prune worker.
func (args PruneJobArgs) Kind() string { return PruneJobKind }

// InsertOpts keeps at most one pending prune job per period.
func (args PruneJobArgs) InsertOpts() river.InsertOpts {
	opts := river.InsertOpts{MaxAttempts: 3}
	if args.uniqueJobPeriod > 0 {
		opts.UniqueOpts = river.UniqueOpts{
			ByPeriod: args.uniqueJobPeriod,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStateCompleted,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		}
	}

	return opts
}
