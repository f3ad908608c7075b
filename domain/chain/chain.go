package chain

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/x-xyz/goens/base/ctx"
	"github.com/x-xyz/goens/domain"
)

// Client is the on-chain collaborator the resolution and ownership flows
// run against. Reads go through the abi codec, writes are raw calldata
// signed by an account the connected node manages.
type Client interface {
	// Call reads a contract method and returns the unpacked outputs.
	Call(c ctx.Ctx, to domain.Address, contractAbi abi.ABI, method string, args ...interface{}) ([]interface{}, error)
	// Transact submits calldata from a node-managed account and returns
	// the transaction hash.
	Transact(c ctx.Ctx, from domain.Address, to domain.Address, data []byte) (domain.TxHash, error)
	// TransactionReceipt returns ethereum.NotFound while the transaction
	// is still pending.
	TransactionReceipt(c ctx.Ctx, hash domain.TxHash) (*types.Receipt, error)
	// Accounts lists the accounts the connected node can sign for.
	Accounts(c ctx.Ctx) ([]domain.Address, error)
}
