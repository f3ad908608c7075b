package ens

import (
	"github.com/viney-shih/goroutines"

	bCtx "github.com/x-xyz/goens/base/ctx"
	"github.com/x-xyz/goens/base/log"
	"github.com/x-xyz/goens/domain"
)

const batchConcurrency = 10

type resolvedName struct {
	name    string
	address domain.Address
}

// ResolveBatch forward-resolves independent names through a bounded
// worker batch. A name that fails or has no record maps to the empty
// address; resolutions share no state so they interleave freely.
func (im *impl) ResolveBatch(c bCtx.Ctx, names []string) (map[string]domain.Address, error) {
	res := make(map[string]domain.Address, len(names))
	if len(names) == 0 {
		return res, nil
	}

	b := goroutines.NewBatch(batchConcurrency, goroutines.WithBatchSize(len(names)))
	defer b.Close()
	for i := 0; i < len(names); i++ {
		name := names[i]
		b.Queue(func() (interface{}, error) {
			address, err := im.Address(c, name)
			if err != nil {
				c.WithFields(log.Fields{
					"err":  err,
					"name": name,
				}).Warn("batch resolve failed")
				address = ""
			}
			return resolvedName{name: name, address: address}, nil
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithField("err", ret.Error()).Error("batch resolve error result")
			continue
		}
		r := ret.Value().(resolvedName)
		res[r.name] = r.address
	}
	return res, nil
}
