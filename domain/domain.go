package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/x-xyz/goens/base/ethereum"
)

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

// RegistryAddress is the ENS registry deployed on mainnet. Overridable
// through config for other networks.
const RegistryAddress = Address("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")

// ReverseRegistrarDomain is the reserved namespace for reverse records.
// The reverse registrar contract is the owner of this name.
const ReverseRegistrarDomain = "addr.reverse"

// DefaultResolverName resolves to the public resolver used when a name
// has no resolver registered yet.
const DefaultResolverName = "resolver.eth"

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

// IsZero reports whether the address is unset or the all-zero address.
func (a Address) IsZero() bool {
	return ethereum.IsZero(string(a))
}

func (a Address) Equals(b Address) bool {
	return ethereum.Equal(string(a), string(b))
}

func (a Address) Common() common.Address {
	return common.HexToAddress(string(a))
}

// Checksum returns the address in EIP-55 checksum form.
func (a Address) Checksum() Address {
	return Address(ethereum.Checksum(string(a)))
}

type TxHash string

func (h TxHash) String() string {
	return string(h)
}

func (h TxHash) IsEmpty() bool {
	return len(h) == 0
}

func (h TxHash) Common() common.Hash {
	return common.HexToHash(string(h))
}

// InterfaceId is a 4-byte function-selector fingerprint identifying a
// resolver capability.
type InterfaceId [4]byte

var (
	// ENSIP-10 wildcard resolution, resolve(bytes,bytes)
	ExtendedResolverInterfaceId = InterfaceId{0x90, 0x61, 0xb9, 0x23}
	// text(bytes32,string)
	GetTextInterfaceId = InterfaceId{0x59, 0xd1, 0xd4, 0x3c}
)

func (id InterfaceId) Bytes() [4]byte {
	return id
}
