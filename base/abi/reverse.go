package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ReverseResolverABI deliberately carries no supportsInterface entry.
// Reverse lookups always use the direct call path because the capability
// probe fails its static check against this ABI.
var (
	ReverseResolverABI  abi.ABI
	ReverseRegistrarABI abi.ABI
)

func init() {
	_abi, err := abi.JSON(strings.NewReader(reverseResolverABIJson))
	if err != nil {
		panic("Failed to parse ABI")
	}
	ReverseResolverABI = _abi

	_abi, err = abi.JSON(strings.NewReader(reverseRegistrarABIJson))
	if err != nil {
		panic("Failed to parse ABI")
	}
	ReverseRegistrarABI = _abi
}

var reverseResolverABIJson = `
[
  {
    "inputs": [{ "internalType": "bytes32", "name": "node", "type": "bytes32" }],
    "name": "name",
    "outputs": [{ "internalType": "string", "name": "", "type": "string" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "string", "name": "name", "type": "string" }
    ],
    "name": "setName",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]
`

var reverseRegistrarABIJson = `
[
  {
    "inputs": [{ "internalType": "string", "name": "name", "type": "string" }],
    "name": "setName",
    "outputs": [{ "internalType": "bytes32", "name": "", "type": "bytes32" }],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{ "internalType": "address", "name": "owner", "type": "address" }],
    "name": "claim",
    "outputs": [{ "internalType": "bytes32", "name": "", "type": "bytes32" }],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]
`
