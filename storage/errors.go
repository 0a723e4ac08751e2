package storage

import "errors"

var ErrNotFound = errors.New("item not found in storage")
var ErrItemWithIDAlreadyExists = errors.New("item with the same id already exists")
var ErrEmailAlreadyRegistered = errors.New("email already registered")
var ErrAlreadyVoted = errors.New("voter already voted in this election")
var ErrCandidateNotInElection = errors.New("candidate does not belong to election")
var ErrTransactionConflict = errors.New("transaction conflict, retries exhausted")

// errElectionChanged means the election's candidate set moved between the
// read and the conditional delete.
var errElectionChanged = errors.New("election changed during delete")
