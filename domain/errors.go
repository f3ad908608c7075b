package domain

import "errors"

var (
	// ErrInvalidName will throw if a name fails syntax or normalization rules
	ErrInvalidName = errors.New("invalid ens name")
	// ErrInvalidAddress will throw if an address is malformed or not in checksum form
	ErrInvalidAddress = errors.New("address must be supplied in checksum format")
	// ErrResolverNotFound will throw if no resolver exists anywhere in the ancestor chain
	ErrResolverNotFound = errors.New("no resolver found for name")
	// ErrUnsupportedFunction will throw if the resolver lacks the required capability
	ErrUnsupportedFunction = errors.New("resolver does not support function")
	// ErrUnauthorized will throw if the caller does not control the required account
	ErrUnauthorized = errors.New("account not controlled by caller")
	// ErrUnownedName will throw if no address can be determined and the name has no owner
	ErrUnownedName = errors.New("name is not owned, claim subdomain first")
	// ErrAddressMismatch will throw on conflicting forward/reverse address claims
	ErrAddressMismatch = errors.New("name resolves to a different address")
	// ErrTxNotMined will throw if receipt polling exceeded its deadline
	ErrTxNotMined = errors.New("transaction not mined within timeout")
)
