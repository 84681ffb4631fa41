package checkout

import (
	"errors"
	"fmt"
)

// ErrEmptyCart means there was nothing to check out. No transaction is
// opened in that case; retrying without changing the cart is pointless.
var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// PersistenceError wraps a storage or transaction failure. Nothing was
// committed, so this is the one failure class the caller may retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("checkout %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
