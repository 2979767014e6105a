package storage

import "gateway/pkg/serrors"

// Transaction misuse errors returned by storage implementations. They are
// programming errors and carry the INTERNAL kind so they never leak a message
// to API clients.
var (
	// ErrAlreadyInTx is returned by Begin on a handle that is already a transaction.
	ErrAlreadyInTx = serrors.With(serrors.ErrInternal, "already in tx")
	// ErrNotInTx is returned by Commit or Rollback outside a transaction, or on
	// a transaction that already ended.
	ErrNotInTx = serrors.With(serrors.ErrInternal, "not in tx")
)
