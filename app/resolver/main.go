package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	bCtx "github.com/x-xyz/goens/base/ctx"
	"github.com/x-xyz/goens/base/log"
	"github.com/x-xyz/goens/domain"
	"github.com/x-xyz/goens/service/chain"
	ensservice "github.com/x-xyz/goens/service/ens"
)

func init() {
	pflag.String("config", "configs/resolver/config.yaml", "config file")
	pflag.StringSlice("names", nil, "names to forward-resolve")
	pflag.String("reverse", "", "address to reverse-resolve")
	pflag.String("text", "", "text record key to read for each name")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		panic(err)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(viper.GetString("config"))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	ctx := bCtx.WithValue(bCtx.Background(), "runId", uuid.New().String())

	rpcUrl := viper.GetString("chain.rpcUrl")
	registry := viper.GetString("chain.registry")
	receiptTimeout := viper.GetDuration("chain.receiptTimeout")
	pollInterval := viper.GetDuration("chain.pollInterval")
	cacheTtl := viper.GetDuration("resolver.cacheTtl")
	names := viper.GetStringSlice("names")
	reverse := viper.GetString("reverse")
	textKey := viper.GetString("text")

	ctx.WithFields(log.Fields{
		"chain.rpcUrl":         rpcUrl,
		"chain.registry":       registry,
		"chain.receiptTimeout": receiptTimeout,
		"chain.pollInterval":   pollInterval,
		"resolver.cacheTtl":    cacheTtl,
	}).Info("config")

	chainClient, err := chain.NewClient(ctx, &chain.ClientCfg{
		RpcUrl: rpcUrl,
	})
	if err != nil {
		ctx.WithField("err", err).Panic("chain.NewClient failed")
	}

	ens := ensservice.New(chainClient, &ensservice.Cfg{
		Registry:       domain.Address(registry),
		ReceiptTimeout: receiptTimeout,
		PollInterval:   pollInterval,
	})
	if cacheTtl > 0 {
		ens = ensservice.NewCached(ens, cacheTtl)
	}

	if reverse != "" {
		name, err := ens.Name(ctx, domain.Address(reverse))
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"address": reverse,
			}).Panic("reverse resolution failed")
		}
		fmt.Printf("%s\t%s\n", reverse, name)
	}

	if len(names) == 0 {
		return
	}

	resolved, err := ens.ResolveBatch(ctx, names)
	if err != nil {
		ctx.WithField("err", err).Panic("batch resolution failed")
	}
	for _, name := range names {
		fmt.Printf("%s\t%s\n", name, resolved[name])
		if textKey == "" {
			continue
		}
		value, err := ens.Text(ctx, name, textKey)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":  err,
				"name": name,
				"key":  textKey,
			}).Warn("text lookup failed")
			continue
		}
		fmt.Printf("%s\t%s=%s\n", name, textKey, value)
	}
}
