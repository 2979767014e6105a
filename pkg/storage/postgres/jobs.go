package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivertype"
)

// AddJob enqueues a River job through the current handle and reports whether
// it was inserted. It returns false when River skipped the job as a duplicate
// of a unique job (see conversation.PruneJobArgs).
//
// Inside a transaction (DB is a *sql.Tx) the job is inserted with InsertTx and
// only becomes visible once the transaction commits. Otherwise it is inserted
// right away through the *sql.DB.
func (p *PgSQL) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	var (
		res *rivertype.JobInsertResult
		err error
	)

	switch db := p.DB.(type) {
	case *sql.Tx:
		res, err = insertJob(riverdatabasesql.New(nil), func(client *river.Client[*sql.Tx]) (*rivertype.JobInsertResult, error) {
			return client.InsertTx(ctx, db, args, opts)
		})
	case *sql.DB:
		res, err = insertJob(riverdatabasesql.New(db), func(client *river.Client[*sql.Tx]) (*rivertype.JobInsertResult, error) {
			return client.Insert(ctx, args, opts)
		})
	default:
		return false, fmt.Errorf("unsupported database handle %T", p.DB)
	}
	if err != nil {
		return false, err
	}

	return !res.UniqueSkippedAsDuplicate, nil
}

// insertJob builds an insert-only River client on driver and runs insert.
func insertJob(driver *riverdatabasesql.Driver,
	insert func(client *river.Client[*sql.Tx]) (*rivertype.JobInsertResult, error)) (*rivertype.JobInsertResult, error) {
	client, err := river.NewClient[*sql.Tx](driver, &river.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	res, err := insert(client)
	if err != nil {
		return nil, fmt.Errorf("could not insert job: %w", err)
	}

	return res, nil
}
