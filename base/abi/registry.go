package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// RegistryABI covers the ENS registry accessors and mutators the
// resolution and ownership flows touch.
var RegistryABI abi.ABI

func init() {
	_abi, err := abi.JSON(strings.NewReader(registryABIJson))
	if err != nil {
		panic("Failed to parse ABI")
	}
	RegistryABI = _abi
}

var registryABIJson = `
[
  {
    "inputs": [{ "internalType": "bytes32", "name": "node", "type": "bytes32" }],
    "name": "resolver",
    "outputs": [{ "internalType": "address", "name": "", "type": "address" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{ "internalType": "bytes32", "name": "node", "type": "bytes32" }],
    "name": "owner",
    "outputs": [{ "internalType": "address", "name": "", "type": "address" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{ "internalType": "bytes32", "name": "node", "type": "bytes32" }],
    "name": "ttl",
    "outputs": [{ "internalType": "uint64", "name": "", "type": "uint64" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "address", "name": "resolver", "type": "address" }
    ],
    "name": "setResolver",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "address", "name": "owner", "type": "address" }
    ],
    "name": "setOwner",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "bytes32", "name": "label", "type": "bytes32" },
      { "internalType": "address", "name": "owner", "type": "address" }
    ],
    "name": "setSubnodeOwner",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "uint64", "name": "ttl", "type": "uint64" }
    ],
    "name": "setTTL",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]
`
