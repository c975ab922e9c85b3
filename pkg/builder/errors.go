package builder

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNode means a connection named a node handle that was never declared
	ErrUnknownNode = errors.New("unknown node handle")

	// ErrUnknownWire means a connection named a wire index that was never allocated
	ErrUnknownWire = errors.New("unknown wire index")
)

// ContractError is the panic value raised when the structure walk and the
// builder disagree about what has been declared.
type ContractError struct {
	Op     string
	Detail string
	Err    error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("builder: %s: %v (%s)", e.Op, e.Err, e.Detail)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}
