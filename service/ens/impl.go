package ens

import (
	"time"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	baseabi "github.com/x-xyz/goens/base/abi"
	bCtx "github.com/x-xyz/goens/base/ctx"
	"github.com/x-xyz/goens/base/log"
	"github.com/x-xyz/goens/domain"
	"github.com/x-xyz/goens/domain/chain"
	"github.com/x-xyz/goens/domain/ens"
	chainsvc "github.com/x-xyz/goens/service/chain"
)

type Cfg struct {
	// Registry overrides the mainnet registry address.
	Registry domain.Address
	// ReceiptTimeout, when positive, makes mutating operations wait for
	// each submitted transaction to be mined before continuing.
	ReceiptTimeout time.Duration
	PollInterval   time.Duration
}

type impl struct {
	client         chain.Client
	registry       domain.Address
	receiptTimeout time.Duration
	pollInterval   time.Duration
}

func New(client chain.Client, cfg *Cfg) ens.ENS {
	im := &impl{
		client:       client,
		registry:     domain.RegistryAddress,
		pollInterval: 100 * time.Millisecond,
	}
	if cfg != nil {
		if !cfg.Registry.IsEmpty() {
			im.registry = cfg.Registry
		}
		im.receiptTimeout = cfg.ReceiptTimeout
		if cfg.PollInterval > 0 {
			im.pollInterval = cfg.PollInterval
		}
	}
	return im
}

// resolverAbiFor picks the contract shape by target field. Reverse
// lookups speak to reverse resolvers, whose ABI carries no
// supportsInterface entry, so they never take the extended path.
func resolverAbiFor(field string) ethabi.ABI {
	if field == "name" {
		return baseabi.ReverseResolverABI
	}
	return baseabi.ResolverABI
}

// locate walks the ancestor chain from the queried name upward and
// returns the first registered resolver, or nil when the walk exhausts
// the hierarchy. One registry read per level, no caching.
func (im *impl) locate(c bCtx.Ctx, normalName, field string) (*ens.ResolverRef, error) {
	current := normalName
	for current != "" {
		node, err := NameHash(current)
		if err != nil {
			return nil, err
		}
		out, err := im.client.Call(c, im.registry, baseabi.RegistryABI, "resolver", node)
		if err != nil {
			c.WithFields(log.Fields{
				"err":  err,
				"name": current,
			}).Error("registry resolver lookup failed")
			return nil, xerrors.Errorf("resolver of %q: %w", current, err)
		}
		if addr, ok := out[0].(common.Address); ok && addr != (common.Address{}) {
			return &ens.ResolverRef{
				Address: domain.Address(addr.Hex()),
				Name:    current,
				Abi:     resolverAbiFor(field),
			}, nil
		}
		current = Parent(current)
	}
	return nil, nil
}

// supports probes a resolver for a capability. A resolver whose ABI has
// no supportsInterface entry is unsupported by definition, and any call
// failure counts as unsupported rather than an error: probing is best
// effort.
func (im *impl) supports(c bCtx.Ctx, resolver *ens.ResolverRef, id domain.InterfaceId) bool {
	if _, ok := resolver.Abi.Methods["supportsInterface"]; !ok {
		return false
	}
	out, err := im.client.Call(c, resolver.Address, resolver.Abi, "supportsInterface", id.Bytes())
	if err != nil || len(out) == 0 {
		return false
	}
	supported, ok := out[0].(bool)
	return ok && supported
}

// resolve runs the three-way dispatch: extended resolution when the
// resolver advertises it, a direct call when the resolver sits exactly
// at the queried name, and an absent value when the resolver was found
// only at an ancestor without wildcard support (the last case cannot
// distinguish "no record" from "unsupported", by protocol).
func (im *impl) resolve(c bCtx.Ctx, name, field string) (interface{}, error) {
	normal, err := Normalize(name)
	if err != nil {
		return nil, err
	}

	resolver, err := im.locate(c, normal, field)
	if err != nil {
		return nil, err
	}
	if resolver == nil {
		return nil, nil
	}

	node, err := NameHash(normal)
	if err != nil {
		return nil, err
	}

	if im.supports(c, resolver, domain.ExtendedResolverInterfaceId) {
		calldata, err := resolver.Abi.Pack(field, node)
		if err != nil {
			return nil, xerrors.Errorf("packing %s calldata: %w", field, err)
		}
		wireName, err := EncodeName(normal)
		if err != nil {
			return nil, err
		}
		out, err := im.client.Call(c, resolver.Address, baseabi.ExtendedResolverABI, "resolve", wireName, calldata)
		if err != nil {
			c.WithFields(log.Fields{
				"err":  err,
				"name": normal,
			}).Error("extended resolve call failed")
			return nil, err
		}
		raw, ok := out[0].([]byte)
		if !ok {
			return nil, xerrors.Errorf("extended resolver returned %T, want bytes", out[0])
		}
		decoded, err := resolver.Abi.Unpack(field, raw)
		if err != nil {
			return nil, xerrors.Errorf("decoding %s result: %w", field, err)
		}
		if len(decoded) == 1 {
			return checksummed(decoded[0]), nil
		}
		return decoded, nil
	}

	if normal == resolver.Name {
		out, err := im.client.Call(c, resolver.Address, resolver.Abi, field, node)
		if err != nil {
			c.WithFields(log.Fields{
				"err":   err,
				"name":  normal,
				"field": field,
			}).Error("resolver call failed")
			return nil, err
		}
		if len(out) == 1 {
			if addr, ok := out[0].(common.Address); ok {
				if addr == (common.Address{}) {
					return nil, nil
				}
				return domain.Address(addr.Hex()), nil
			}
			return out[0], nil
		}
		return out, nil
	}

	return nil, nil
}

// checksummed canonicalizes address-shaped values to checksum form and
// leaves everything else alone.
func checksummed(v interface{}) interface{} {
	if addr, ok := v.(common.Address); ok {
		return domain.Address(addr.Hex())
	}
	return v
}

func (im *impl) Address(c bCtx.Ctx, name string) (domain.Address, error) {
	res, err := im.resolve(c, name, "addr")
	if err != nil || res == nil {
		return "", err
	}
	addr, ok := res.(domain.Address)
	if !ok {
		return "", xerrors.Errorf("addr record of %q decoded to %T", name, res)
	}
	return addr, nil
}

func (im *impl) Name(c bCtx.Ctx, address domain.Address) (string, error) {
	res, err := im.resolve(c, ReverseDomain(address), "name")
	if err != nil || res == nil {
		return "", err
	}
	name, ok := res.(string)
	if !ok || name == "" {
		return "", nil
	}

	// a reverse record is only trusted when the forward resolution of
	// the returned name points back at the address
	forward, err := im.Address(c, name)
	if err != nil {
		return "", err
	}
	if !forward.Equals(address.Checksum()) {
		return "", nil
	}
	return name, nil
}

func (im *impl) Resolver(c bCtx.Ctx, name string) (*ens.ResolverRef, error) {
	normal, err := Normalize(name)
	if err != nil {
		return nil, err
	}
	return im.locate(c, normal, "addr")
}

func (im *impl) Reverser(c bCtx.Ctx, address domain.Address) (*ens.ResolverRef, error) {
	return im.Resolver(c, ReverseDomain(address))
}

func (im *impl) Owner(c bCtx.Ctx, name string) (domain.Address, error) {
	node, err := NameHash(name)
	if err != nil {
		return "", err
	}
	out, err := im.client.Call(c, im.registry, baseabi.RegistryABI, "owner", node)
	if err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"name": name,
		}).Error("registry owner lookup failed")
		return "", xerrors.Errorf("owner of %q: %w", name, err)
	}
	addr, ok := out[0].(common.Address)
	if !ok {
		return "", xerrors.Errorf("owner of %q decoded to %T", name, out[0])
	}
	return domain.Address(addr.Hex()), nil
}

func (im *impl) TTL(c bCtx.Ctx, name string) (uint64, error) {
	node, err := NameHash(name)
	if err != nil {
		return 0, err
	}
	out, err := im.client.Call(c, im.registry, baseabi.RegistryABI, "ttl", node)
	if err != nil {
		return 0, xerrors.Errorf("ttl of %q: %w", name, err)
	}
	ttl, ok := out[0].(uint64)
	if !ok {
		return 0, xerrors.Errorf("ttl of %q decoded to %T", name, out[0])
	}
	return ttl, nil
}

func (im *impl) Text(c bCtx.Ctx, name string, key string) (string, error) {
	normal, err := Normalize(name)
	if err != nil {
		return "", err
	}
	node, err := NameHash(normal)
	if err != nil {
		return "", err
	}

	resolver, err := im.locate(c, normal, "addr")
	if err != nil {
		return "", err
	}
	if resolver == nil {
		return "", xerrors.Errorf("name %q: %w", name, domain.ErrResolverNotFound)
	}
	if !im.supports(c, resolver, domain.GetTextInterfaceId) {
		return "", xerrors.Errorf("text records of %q: %w", name, domain.ErrUnsupportedFunction)
	}

	out, err := im.client.Call(c, resolver.Address, resolver.Abi, "text", node, key)
	if err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"name": name,
			"key":  key,
		}).Error("text lookup failed")
		return "", err
	}
	value, ok := out[0].(string)
	if !ok {
		return "", xerrors.Errorf("text record of %q decoded to %T", name, out[0])
	}
	return value, nil
}

// waitMined blocks until a submitted transaction is mined, when the
// service was configured to do so.
func (im *impl) waitMined(c bCtx.Ctx, hash domain.TxHash) error {
	if im.receiptTimeout <= 0 {
		return nil
	}
	_, err := chainsvc.WaitMined(c, im.client, hash, im.receiptTimeout, im.pollInterval)
	return err
}
