package ens

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	baseabi "github.com/x-xyz/goens/base/abi"
	bCtx "github.com/x-xyz/goens/base/ctx"
	baseeth "github.com/x-xyz/goens/base/ethereum"
	"github.com/x-xyz/goens/base/log"
	"github.com/x-xyz/goens/domain"
	"github.com/x-xyz/goens/domain/ens"
)

// FirstOwner walks ancestors from the queried name toward the root
// until one of them has an owner. Unowned collects the labels passed on
// the way, deepest first; Owned is the ancestor the walk stopped at.
func (im *impl) FirstOwner(c bCtx.Ctx, name string) (*ens.OwnershipChain, error) {
	normal, err := Normalize(name)
	if err != nil {
		return nil, err
	}

	var owner domain.Address
	unowned := []string{}
	pieces := strings.Split(normal, ".")
	current := normal
	for len(pieces) > 0 && owner.IsZero() {
		current = strings.Join(pieces, ".")
		owner, err = im.Owner(c, current)
		if err != nil {
			return nil, err
		}
		if owner.IsZero() {
			unowned = append(unowned, pieces[0])
			pieces = pieces[1:]
		}
	}
	return &ens.OwnershipChain{
		Owner:   owner,
		Unowned: unowned,
		Owned:   current,
	}, nil
}

func (im *impl) SetupOwner(c bCtx.Ctx, name string, newOwner *domain.Address, cfg *ens.TxConfig) (domain.Address, error) {
	ownership, err := im.FirstOwner(c, name)
	if err != nil {
		return "", err
	}
	superOwner := ownership.Owner

	var target domain.Address
	switch {
	case newOwner == nil:
		target = superOwner
	case newOwner.IsEmpty() || newOwner.Equals(domain.EmptyAddress):
		target = domain.EmptyAddress
	case !baseeth.IsHexAddress(string(*newOwner)):
		// only the literal zero address clears ownership; anything else
		// that fails to parse is an error, not a clear request
		return "", xerrors.Errorf("new owner %q: %w", *newOwner, domain.ErrInvalidAddress)
	default:
		target = newOwner.Checksum()
	}

	current, err := im.Owner(c, name)
	if err != nil {
		return "", err
	}
	if target.Equals(domain.EmptyAddress) && current.IsZero() {
		return "", nil
	}
	if current.Equals(target) {
		return current, nil
	}

	if err := im.assertControl(c, superOwner, name, ownership.Owned); err != nil {
		return "", err
	}
	if err := im.claimOwnership(c, target, ownership.Unowned, ownership.Owned, superOwner); err != nil {
		return "", err
	}
	return target, nil
}

func (im *impl) SetupAddress(c bCtx.Ctx, name string, address *domain.Address, cfg *ens.TxConfig) (domain.TxHash, error) {
	owner, err := im.SetupOwner(c, name, nil, cfg)
	if err != nil {
		return "", err
	}
	if err := im.assertControl(c, owner, name, ""); err != nil {
		return "", err
	}

	var target domain.Address
	switch {
	case address == nil:
		target = owner
	case address.IsEmpty() || address.Equals(domain.EmptyAddress):
		target = "" // clear the record
	case !baseeth.IsChecksumAddress(string(*address)):
		return "", xerrors.Errorf("address %q: %w", *address, domain.ErrInvalidAddress)
	default:
		target = *address
	}

	current, err := im.Address(c, name)
	if err != nil {
		return "", err
	}
	if current.Equals(target) {
		return "", nil
	}
	if target.IsEmpty() {
		target = domain.EmptyAddress
	}

	resolverAddr, err := im.ensureResolver(c, name, owner)
	if err != nil {
		return "", err
	}
	node, err := NameHash(name)
	if err != nil {
		return "", err
	}
	data, err := baseabi.ResolverABI.Pack("setAddr", node, target.Common())
	if err != nil {
		return "", xerrors.Errorf("packing setAddr: %w", err)
	}
	hash, err := im.client.Transact(c, owner, resolverAddr, data)
	if err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"name": name,
		}).Error("setAddr transaction failed")
		return "", err
	}
	if err := im.waitMined(c, hash); err != nil {
		return "", err
	}
	return hash, nil
}

func (im *impl) SetupName(c bCtx.Ctx, name string, address *domain.Address, cfg *ens.TxConfig) (domain.TxHash, error) {
	if name == "" {
		// clearing the reverse record for an address
		var account domain.Address
		if address != nil {
			account = *address
		}
		if err := im.assertControl(c, account, "the reverse record", ""); err != nil {
			return "", err
		}
		return im.setupReverse(c, "", account)
	}

	resolved, err := im.Address(c, name)
	if err != nil {
		return "", err
	}

	var target domain.Address
	switch {
	case address == nil || address.IsEmpty() || address.Equals(domain.EmptyAddress):
		target = resolved
	case !resolved.IsZero() && !address.Equals(resolved):
		return "", xerrors.Errorf(
			"cannot point %q at %s, name already resolves to %s; call SetupAddress first: %w",
			name, *address, resolved, domain.ErrAddressMismatch)
	default:
		target = *address
	}
	if target.IsZero() {
		// fall back to the name's owner
		target, err = im.Owner(c, name)
		if err != nil {
			return "", err
		}
	}
	if target.IsZero() {
		return "", xerrors.Errorf("name %q: %w", name, domain.ErrUnownedName)
	}
	if !baseeth.IsHexAddress(string(target)) {
		return "", xerrors.Errorf("address %q: %w", target, domain.ErrInvalidAddress)
	}
	target = target.Checksum()

	if err := im.assertControl(c, target, name, ""); err != nil {
		return "", err
	}
	if resolved.IsZero() {
		// establish the forward record first
		if _, err := im.SetupAddress(c, name, &target, cfg); err != nil {
			return "", err
		}
	}
	return im.setupReverse(c, name, target)
}

func (im *impl) SetText(c bCtx.Ctx, name string, key string, value string, cfg *ens.TxConfig) (domain.TxHash, error) {
	normal, err := Normalize(name)
	if err != nil {
		return "", err
	}
	node, err := NameHash(normal)
	if err != nil {
		return "", err
	}
	owner, err := im.Owner(c, normal)
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

	from := owner
	if cfg != nil && !cfg.From.IsEmpty() {
		from = cfg.From
	}
	data, err := baseabi.ResolverABI.Pack("setText", node, key, value)
	if err != nil {
		return "", xerrors.Errorf("packing setText: %w", err)
	}
	hash, err := im.client.Transact(c, from, resolver.Address, data)
	if err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"name": name,
			"key":  key,
		}).Error("setText transaction failed")
		return "", err
	}
	if err := im.waitMined(c, hash); err != nil {
		return "", err
	}
	return hash, nil
}

// assertControl fails unless the account is among the accounts the
// connected node can sign for.
func (im *impl) assertControl(c bCtx.Ctx, account domain.Address, name, parentOwned string) error {
	accounts, err := im.client.Accounts(c)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.Equals(account) {
			return nil
		}
	}
	owned := parentOwned
	if owned == "" {
		owned = name
	}
	return xerrors.Errorf(
		"to modify %q you must control account %q, which owns %q: %w",
		name, account, owned, domain.ErrUnauthorized)
}

// claimOwnership claims each unowned label from least specific to most
// specific, widening the owned frontier one subnode transaction at a
// time.
func (im *impl) claimOwnership(c bCtx.Ctx, owner domain.Address, unowned []string, owned string, oldOwner domain.Address) error {
	from := oldOwner
	if from.IsZero() {
		from = owner
	}
	for i := len(unowned) - 1; i >= 0; i-- {
		label := unowned[i]
		node, err := NameHash(owned)
		if err != nil {
			return err
		}
		labelHash, err := LabelHash(label)
		if err != nil {
			return err
		}
		data, err := baseabi.RegistryABI.Pack("setSubnodeOwner", node, labelHash, owner.Common())
		if err != nil {
			return xerrors.Errorf("packing setSubnodeOwner: %w", err)
		}
		hash, err := im.client.Transact(c, from, im.registry, data)
		if err != nil {
			c.WithFields(log.Fields{
				"err":   err,
				"label": label,
				"owned": owned,
			}).Error("setSubnodeOwner transaction failed")
			return err
		}
		if err := im.waitMined(c, hash); err != nil {
			return err
		}
		owned = label + "." + owned
	}
	return nil
}

// ensureResolver makes sure the name has a resolver registered, setting
// the default public resolver when it has none, and returns the
// resolver address to write records through.
func (im *impl) ensureResolver(c bCtx.Ctx, name string, from domain.Address) (domain.Address, error) {
	defaultResolver, err := im.Address(c, domain.DefaultResolverName)
	if err != nil {
		return "", err
	}
	if defaultResolver.IsZero() {
		return "", xerrors.Errorf("default resolver %q: %w", domain.DefaultResolverName, domain.ErrResolverNotFound)
	}

	node, err := NameHash(name)
	if err != nil {
		return "", err
	}
	out, err := im.client.Call(c, im.registry, baseabi.RegistryABI, "resolver", node)
	if err != nil {
		return "", xerrors.Errorf("resolver of %q: %w", name, err)
	}
	current := domain.Address("")
	if addr, ok := out[0].(common.Address); ok {
		current = domain.Address(addr.Hex())
	}
	if !current.Equals(defaultResolver) {
		data, err := baseabi.RegistryABI.Pack("setResolver", node, defaultResolver.Common())
		if err != nil {
			return "", xerrors.Errorf("packing setResolver: %w", err)
		}
		hash, err := im.client.Transact(c, from, im.registry, data)
		if err != nil {
			c.WithFields(log.Fields{
				"err":  err,
				"name": name,
			}).Error("setResolver transaction failed")
			return "", err
		}
		if err := im.waitMined(c, hash); err != nil {
			return "", err
		}
	}
	return defaultResolver, nil
}

// setupReverse writes the reverse record, signed by the address whose
// record it is. The reverse registrar is the owner of addr.reverse.
func (im *impl) setupReverse(c bCtx.Ctx, name string, address domain.Address) (domain.TxHash, error) {
	normal := ""
	if name != "" {
		var err error
		normal, err = Normalize(name)
		if err != nil {
			return "", err
		}
	}
	registrar, err := im.Owner(c, domain.ReverseRegistrarDomain)
	if err != nil {
		return "", err
	}
	data, err := baseabi.ReverseRegistrarABI.Pack("setName", normal)
	if err != nil {
		return "", xerrors.Errorf("packing setName: %w", err)
	}
	hash, err := im.client.Transact(c, address, registrar, data)
	if err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"name": name,
		}).Error("reverse setName transaction failed")
		return "", err
	}
	if err := im.waitMined(c, hash); err != nil {
		return "", err
	}
	return hash, nil
}
