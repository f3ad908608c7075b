package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Checksum re-encodes a hex address in EIP-55 checksum form.
func Checksum(address string) string {
	return common.HexToAddress(address).Hex()
}

// IsHexAddress returns whether the string parses as a 20-byte hex address.
func IsHexAddress(address string) bool {
	return common.IsHexAddress(address)
}

// IsChecksumAddress returns whether an address is in valid EIP-55
// checksum form. All-lowercase and all-uppercase inputs do not qualify
// unless their checksum form happens to match.
func IsChecksumAddress(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	return common.HexToAddress(address).Hex() == address
}

// IsZero reports whether an address is unset or the zero address.
func IsZero(address string) bool {
	if address == "" {
		return true
	}
	if !common.IsHexAddress(address) {
		return true
	}
	return common.HexToAddress(address) == (common.Address{})
}

// Equal compares two hex addresses ignoring checksum casing.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}
