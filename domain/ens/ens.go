package ens

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/x-xyz/goens/base/ctx"
	"github.com/x-xyz/goens/domain"
)

// ResolverRef points at the resolver contract answering for a name. Name
// is the ancestor at which the resolver was registered, which may be
// shallower than the queried name when the registration lives further up
// the hierarchy.
type ResolverRef struct {
	Address domain.Address
	Name    string
	Abi     abi.ABI
}

// OwnershipChain is the result of walking a name's ancestors from most
// specific to least specific until an owner was found. Unowned holds the
// labels passed on the way, deepest first. Owned is the first owned
// ancestor, or the last candidate checked when the walk exhausted the
// chain without finding an owner.
type OwnershipChain struct {
	Owner   domain.Address
	Unowned []string
	Owned   string
}

// TxConfig carries the transaction options for mutating operations. From
// defaults to the owning account of the name being mutated.
type TxConfig struct {
	From domain.Address
}

type ENS interface {
	// Address looks up the address a name points to. Returns the empty
	// address when the name has no resolver or no record.
	Address(c ctx.Ctx, name string) (domain.Address, error)
	// Name reverse-resolves an address. The result is discarded unless
	// its forward resolution points back at the address.
	Name(c ctx.Ctx, address domain.Address) (string, error)
	// Resolver locates the resolver answering for a name, walking the
	// ancestor chain. Returns nil when no resolver is registered.
	Resolver(c ctx.Ctx, name string) (*ResolverRef, error)
	// Reverser locates the resolver of an address's reverse domain.
	Reverser(c ctx.Ctx, address domain.Address) (*ResolverRef, error)
	// Owner reads the registry owner of a name. Zero address when unowned.
	Owner(c ctx.Ctx, name string) (domain.Address, error)
	// TTL reads the registry ttl of a name.
	TTL(c ctx.Ctx, name string) (uint64, error)
	// Text reads a text record. Requires the text capability.
	Text(c ctx.Ctx, name string, key string) (string, error)
	// SetText writes a text record, signed by the name's owner.
	SetText(c ctx.Ctx, name string, key string, value string, cfg *TxConfig) (domain.TxHash, error)
	// FirstOwner walks ancestors until a name with an owner is found.
	FirstOwner(c ctx.Ctx, name string) (*OwnershipChain, error)
	// SetupOwner makes newOwner own the name, claiming unowned ancestor
	// labels on the way. A nil newOwner defaults to the super-owner.
	SetupOwner(c ctx.Ctx, name string, newOwner *domain.Address, cfg *TxConfig) (domain.Address, error)
	// SetupAddress points a name at an address. A nil address defaults to
	// the owner, a zero address clears the record. The empty hash is
	// returned when the record already matched and no transaction was sent.
	SetupAddress(c ctx.Ctx, name string, address *domain.Address, cfg *TxConfig) (domain.TxHash, error)
	// SetupName sets up the reverse record so Name(address) returns name.
	SetupName(c ctx.Ctx, name string, address *domain.Address, cfg *TxConfig) (domain.TxHash, error)
	// ResolveBatch forward-resolves independent names concurrently.
	// Names that fail or miss map to the empty address.
	ResolveBatch(c ctx.Ctx, names []string) (map[string]domain.Address, error)
}
