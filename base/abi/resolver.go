package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ResolverABI is the standard public resolver surface used for forward
// lookups. ExtendedResolverABI adds the ENSIP-10 wildcard entry point;
// a resolver advertising the extended interface id is re-addressed
// through it.
var (
	ResolverABI         abi.ABI
	ExtendedResolverABI abi.ABI
)

func init() {
	_abi, err := abi.JSON(strings.NewReader(resolverABIJson))
	if err != nil {
		panic("Failed to parse ABI")
	}
	ResolverABI = _abi

	_abi, err = abi.JSON(strings.NewReader(extendedResolverABIJson))
	if err != nil {
		panic("Failed to parse ABI")
	}
	ExtendedResolverABI = _abi
}

var resolverABIJson = `
[
  {
    "inputs": [{ "internalType": "bytes4", "name": "interfaceID", "type": "bytes4" }],
    "name": "supportsInterface",
    "outputs": [{ "internalType": "bool", "name": "", "type": "bool" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{ "internalType": "bytes32", "name": "node", "type": "bytes32" }],
    "name": "addr",
    "outputs": [{ "internalType": "address", "name": "", "type": "address" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "address", "name": "addr", "type": "address" }
    ],
    "name": "setAddr",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
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
      { "internalType": "string", "name": "key", "type": "string" }
    ],
    "name": "text",
    "outputs": [{ "internalType": "string", "name": "", "type": "string" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "string", "name": "key", "type": "string" },
      { "internalType": "string", "name": "value", "type": "string" }
    ],
    "name": "setText",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]
`

var extendedResolverABIJson = `
[
  {
    "inputs": [{ "internalType": "bytes4", "name": "interfaceID", "type": "bytes4" }],
    "name": "supportsInterface",
    "outputs": [{ "internalType": "bool", "name": "", "type": "bool" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes", "name": "name", "type": "bytes" },
      { "internalType": "bytes", "name": "data", "type": "bytes" }
    ],
    "name": "resolve",
    "outputs": [{ "internalType": "bytes", "name": "", "type": "bytes" }],
    "stateMutability": "view",
    "type": "function"
  }
]
`
