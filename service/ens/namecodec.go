package ens

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/net/idna"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goens/domain"
)

// UTS-46 profile per ENSIP-1: transitional processing off, STD3 ascii
// rules on, mapped for lookup.
var namePrep = idna.New(idna.Transitional(false), idna.StrictDomainName(true), idna.MapForLookup())

// Normalize canonicalizes a name label by label. The empty name is the
// root sentinel and normalizes to itself; empty labels anywhere else
// (leading/trailing/doubled dots) are invalid.
func Normalize(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	labels := strings.Split(name, ".")
	out := make([]string, len(labels))
	for i, label := range labels {
		if label == "" {
			return "", xerrors.Errorf("empty label in %q: %w", name, domain.ErrInvalidName)
		}
		normal, err := namePrep.ToUnicode(label)
		if err != nil {
			return "", xerrors.Errorf("label %q: %w", label, domain.ErrInvalidName)
		}
		out[i] = normal
	}
	return strings.Join(out, "."), nil
}

// IsValidName reports whether a name passes normalization. The empty
// name is not a valid name even though it normalizes.
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	_, err := Normalize(name)
	return err == nil
}

// LabelHash hashes a single normalized label, independent of position.
func LabelHash(label string) (common.Hash, error) {
	normal, err := Normalize(label)
	if err != nil {
		return common.Hash{}, err
	}
	if normal == "" || strings.Contains(normal, ".") {
		return common.Hash{}, xerrors.Errorf("label %q: %w", label, domain.ErrInvalidName)
	}
	return crypto.Keccak256Hash([]byte(normal)), nil
}

// NameHash computes the ENSIP-1 registry node of a name:
// hash(hash(parent) || labelhash(label)), folding from the top level
// down, with the empty name hashing to the zero node.
func NameHash(name string) (common.Hash, error) {
	var node common.Hash

	normal, err := Normalize(name)
	if err != nil {
		return node, err
	}
	if normal == "" {
		return node, nil
	}

	labels := strings.Split(normal, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash, err := LabelHash(labels[i])
		if err != nil {
			return common.Hash{}, err
		}
		node = crypto.Keccak256Hash(node[:], labelHash[:])
	}
	return node, nil
}

// Parent strips the most specific label. The root of the hierarchy is
// the empty name: Parent("eth") == Parent("") == "".
func Parent(name string) string {
	if name == "" {
		return ""
	}
	labels := strings.Split(name, ".")
	if len(labels) == 1 {
		return ""
	}
	return strings.Join(labels[1:], ".")
}

// EncodeName produces the ENSIP-10 wire form consumed by extended
// resolvers: a run of length-prefixed labels closed by a zero byte.
func EncodeName(name string) ([]byte, error) {
	normal, err := Normalize(name)
	if err != nil {
		return nil, err
	}
	if normal == "" {
		return []byte{0x00}, nil
	}

	var buf []byte
	for _, label := range strings.Split(normal, ".") {
		if len(label) > 255 {
			return nil, xerrors.Errorf("label of %d bytes exceeds wire limit: %w", len(label), domain.ErrInvalidName)
		}
		buf = append(buf, byte(len(label)))
		buf = append(buf, label...)
	}
	return append(buf, 0x00), nil
}

// ReverseDomain builds the reverse-lookup pseudo-name for an address:
// the lowercase hex form, unprefixed, under addr.reverse.
func ReverseDomain(address domain.Address) string {
	hex := strings.ToLower(address.Common().Hex()[2:])
	return hex + "." + domain.ReverseRegistrarDomain
}
