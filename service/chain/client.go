package chain

import (
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/goens/base/ctx"
	"github.com/x-xyz/goens/base/log"
	"github.com/x-xyz/goens/domain"
	"github.com/x-xyz/goens/domain/chain"
)

type ClientCfg struct {
	RpcUrl string
}

type clientImpl struct {
	eth *ethclient.Client
	rpc *rpc.Client
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (chain.Client, error) {
	rpcClient, err := rpc.DialContext(ctx, cfg.RpcUrl)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"url": cfg.RpcUrl,
		}).Error("failed to dial rpc")
		return nil, err
	}
	return &clientImpl{
		eth: ethclient.NewClient(rpcClient),
		rpc: rpcClient,
	}, nil
}

func (c *clientImpl) Call(ctx bCtx.Ctx, to domain.Address, contractAbi abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := contractAbi.Pack(method, args...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"args":   args,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	addr := to.Common()
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := c.eth.CallContract(ctx, msg, nil)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := contractAbi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

// sendTxArgs mirrors the eth_sendTransaction parameter object. Gas and
// price are left to the node, matching its own estimation defaults.
type sendTxArgs struct {
	From common.Address  `json:"from"`
	To   *common.Address `json:"to,omitempty"`
	Data hexutil.Bytes   `json:"data"`
}

func (c *clientImpl) Transact(ctx bCtx.Ctx, from domain.Address, to domain.Address, data []byte) (domain.TxHash, error) {
	toAddr := to.Common()
	args := sendTxArgs{
		From: from.Common(),
		To:   &toAddr,
		Data: data,
	}
	var hash common.Hash
	if err := c.rpc.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"from": from,
			"to":   to,
		}).Error("eth_sendTransaction failed")
		return "", err
	}
	return domain.TxHash(hash.Hex()), nil
}

func (c *clientImpl) TransactionReceipt(ctx bCtx.Ctx, hash domain.TxHash) (*types.Receipt, error) {
	return c.eth.TransactionReceipt(ctx, hash.Common())
}

func (c *clientImpl) Accounts(ctx bCtx.Ctx) ([]domain.Address, error) {
	var accounts []common.Address
	if err := c.rpc.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		ctx.WithField("err", err).Error("eth_accounts failed")
		return nil, xerrors.Errorf("listing node accounts: %w", err)
	}
	res := make([]domain.Address, 0, len(accounts))
	for _, a := range accounts {
		res = append(res, domain.Address(a.Hex()))
	}
	return res, nil
}
