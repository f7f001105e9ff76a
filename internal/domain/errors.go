package domain

import "errors"

// ErrDuplicateEntry is reported when the store rejects a ledger insert on
// the contribution uniqueness constraint. Shared between the repo and
// service layers, which otherwise only meet through interfaces.
var ErrDuplicateEntry = errors.New("duplicate ledger entry")
