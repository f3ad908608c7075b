package chain

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goens/base/backoff"
	bCtx "github.com/x-xyz/goens/base/ctx"
	"github.com/x-xyz/goens/base/log"
	"github.com/x-xyz/goens/domain"
	"github.com/x-xyz/goens/domain/chain"
)

// ReceiptSource is the slice of chain.Client the waiter needs.
type ReceiptSource interface {
	TransactionReceipt(bCtx.Ctx, domain.TxHash) (*types.Receipt, error)
}

var _ ReceiptSource = (chain.Client)(nil)

// WaitMined polls for a transaction receipt at a fixed interval until
// the timeout elapses. A missing receipt means not yet mined; any other
// fetch error aborts the wait. The deadline is enforced through the
// context, so a zero timeout fails on the first poll sleep.
func WaitMined(c bCtx.Ctx, client ReceiptSource, hash domain.TxHash, timeout, pollInterval time.Duration) (*types.Receipt, error) {
	waitCtx, cancel := bCtx.WithTimeout(c, timeout)
	defer cancel()

	b := backoff.NewConstant(pollInterval)
	for {
		receipt, err := client.TransactionReceipt(waitCtx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			if waitCtx.Err() == nil {
				c.WithFields(log.Fields{
					"err":  err,
					"hash": hash,
				}).Error("TransactionReceipt failed")
				return nil, err
			}
		}
		if err := b.Backoff(waitCtx); err != nil {
			return nil, xerrors.Errorf("transaction %s: %w", hash, domain.ErrTxNotMined)
		}
	}
}
