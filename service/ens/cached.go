package ens

import (
	"time"

	bCtx "github.com/x-xyz/goens/base/ctx"
	"github.com/x-xyz/goens/base/keys"
	"github.com/x-xyz/goens/base/log"
	"github.com/x-xyz/goens/domain"
	"github.com/x-xyz/goens/domain/ens"
	"github.com/x-xyz/goens/service/cache"
	"github.com/x-xyz/goens/service/cache/provider/primitive"
)

// cachedImpl memoizes read lookups in front of an uncached service. The
// wrapped service still re-walks the registry on every miss; mutations
// pass through and invalidate what they may have changed.
type cachedImpl struct {
	ens.ENS
	cache cache.Service
}

func NewCached(inner ens.ENS, ttl time.Duration) ens.ENS {
	return &cachedImpl{
		ENS: inner,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   keys.PfxEns,
			Cache: primitive.NewPrimitive("ens", 64),
		}),
	}
}

func addrKey(name string) string {
	return keys.CacheKey("addr", name)
}

func nameKey(address domain.Address) string {
	return keys.CacheKey("name", address.ToLowerStr())
}

func textKey(name, key string) string {
	return keys.CacheKey("text", name, key)
}

func (im *cachedImpl) Address(c bCtx.Ctx, name string) (domain.Address, error) {
	res := domain.Address("")
	err := im.cache.GetByFunc(c, addrKey(name), &res, func() (interface{}, error) {
		addr, err := im.ENS.Address(c, name)
		if err != nil {
			return nil, err
		}
		return &addr, nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"name": name,
		}).Error("failed to cache.GetByFunc")
		return "", err
	}
	return res, nil
}

func (im *cachedImpl) Name(c bCtx.Ctx, address domain.Address) (string, error) {
	res := ""
	err := im.cache.GetByFunc(c, nameKey(address), &res, func() (interface{}, error) {
		name, err := im.ENS.Name(c, address)
		if err != nil {
			return nil, err
		}
		return &name, nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to cache.GetByFunc")
		return "", err
	}
	return res, nil
}

func (im *cachedImpl) Text(c bCtx.Ctx, name string, key string) (string, error) {
	res := ""
	err := im.cache.GetByFunc(c, textKey(name, key), &res, func() (interface{}, error) {
		value, err := im.ENS.Text(c, name, key)
		if err != nil {
			return nil, err
		}
		return &value, nil
	})
	if err != nil {
		return "", err
	}
	return res, nil
}

func (im *cachedImpl) SetupAddress(c bCtx.Ctx, name string, address *domain.Address, cfg *ens.TxConfig) (domain.TxHash, error) {
	hash, err := im.ENS.SetupAddress(c, name, address, cfg)
	if err == nil {
		_ = im.cache.Del(c, addrKey(name))
	}
	return hash, err
}

func (im *cachedImpl) SetupName(c bCtx.Ctx, name string, address *domain.Address, cfg *ens.TxConfig) (domain.TxHash, error) {
	hash, err := im.ENS.SetupName(c, name, address, cfg)
	if err != nil {
		return hash, err
	}
	_ = im.cache.Del(c, addrKey(name))
	if address != nil && !address.IsZero() {
		_ = im.cache.Del(c, nameKey(*address))
	} else if resolved, rerr := im.ENS.Address(c, name); rerr == nil && !resolved.IsZero() {
		// the reverse entry is keyed by whatever the name now resolves to
		_ = im.cache.Del(c, nameKey(resolved))
	}
	return hash, nil
}

func (im *cachedImpl) SetText(c bCtx.Ctx, name string, key string, value string, cfg *ens.TxConfig) (domain.TxHash, error) {
	hash, err := im.ENS.SetText(c, name, key, value, cfg)
	if err == nil {
		_ = im.cache.Del(c, textKey(name, key))
	}
	return hash, err
}
