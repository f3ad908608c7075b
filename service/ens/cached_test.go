package ens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/goens/base/ctx"
	"github.com/x-xyz/goens/domain"
	"github.com/x-xyz/goens/domain/ens"
)

// stubENS counts pass-throughs; only the methods the tests exercise are
// implemented.
type stubENS struct {
	ens.ENS

	addrCalls int
	nameCalls int
	textCalls int
}

func (s *stubENS) Address(c bCtx.Ctx, name string) (domain.Address, error) {
	s.addrCalls++
	return mockTarget, nil
}

func (s *stubENS) Name(c bCtx.Ctx, address domain.Address) (string, error) {
	s.nameCalls++
	return "foo.eth", nil
}

func (s *stubENS) Text(c bCtx.Ctx, name string, key string) (string, error) {
	s.textCalls++
	return "https://example.com", nil
}

func (s *stubENS) SetupAddress(c bCtx.Ctx, name string, address *domain.Address, cfg *ens.TxConfig) (domain.TxHash, error) {
	return domain.TxHash("0x05"), nil
}

func (s *stubENS) SetupName(c bCtx.Ctx, name string, address *domain.Address, cfg *ens.TxConfig) (domain.TxHash, error) {
	return domain.TxHash("0x07"), nil
}

func (s *stubENS) SetText(c bCtx.Ctx, name string, key string, value string, cfg *ens.TxConfig) (domain.TxHash, error) {
	return domain.TxHash("0x06"), nil
}

type cachedSuite struct {
	suite.Suite

	inner *stubENS
	im    ens.ENS
}

func TestCachedSuite(t *testing.T) {
	suite.Run(t, new(cachedSuite))
}

func (s *cachedSuite) SetupTest() {
	s.inner = &stubENS{}
	s.im = NewCached(s.inner, time.Minute)
}

func (s *cachedSuite) TestAddressMemoized() {
	c := bCtx.Background()

	got, err := s.im.Address(c, "foo.eth")
	s.NoError(err)
	s.Equal(mockTarget, got)

	got, err = s.im.Address(c, "foo.eth")
	s.NoError(err)
	s.Equal(mockTarget, got)
	s.Equal(1, s.inner.addrCalls)

	// different name is a different key
	_, err = s.im.Address(c, "bar.eth")
	s.NoError(err)
	s.Equal(2, s.inner.addrCalls)
}

func (s *cachedSuite) TestSetupAddressInvalidates() {
	c := bCtx.Background()

	_, err := s.im.Address(c, "foo.eth")
	s.NoError(err)
	s.Equal(1, s.inner.addrCalls)

	_, err = s.im.SetupAddress(c, "foo.eth", nil, nil)
	s.NoError(err)

	_, err = s.im.Address(c, "foo.eth")
	s.NoError(err)
	s.Equal(2, s.inner.addrCalls)
}

func (s *cachedSuite) TestSetupNameInvalidatesReverse() {
	c := bCtx.Background()

	name, err := s.im.Name(c, mockTarget)
	s.NoError(err)
	s.Equal("foo.eth", name)
	_, err = s.im.Name(c, mockTarget)
	s.NoError(err)
	s.Equal(1, s.inner.nameCalls)

	// nil address: the decorator derives the affected address from the
	// name's forward resolution
	_, err = s.im.SetupName(c, "foo.eth", nil, nil)
	s.NoError(err)

	_, err = s.im.Name(c, mockTarget)
	s.NoError(err)
	s.Equal(2, s.inner.nameCalls)
}

func (s *cachedSuite) TestSetTextInvalidates() {
	c := bCtx.Background()

	_, err := s.im.Text(c, "foo.eth", "url")
	s.NoError(err)
	_, err = s.im.Text(c, "foo.eth", "url")
	s.NoError(err)
	s.Equal(1, s.inner.textCalls)

	_, err = s.im.SetText(c, "foo.eth", "url", "changed", nil)
	s.NoError(err)

	_, err = s.im.Text(c, "foo.eth", "url")
	s.NoError(err)
	s.Equal(2, s.inner.textCalls)
}
