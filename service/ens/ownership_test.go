package ens

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"

	baseabi "github.com/x-xyz/goens/base/abi"
	bCtx "github.com/x-xyz/goens/base/ctx"
	"github.com/x-xyz/goens/domain"
	"github.com/x-xyz/goens/domain/ens"
)

var (
	mockOwner     = domain.Address(common.HexToAddress("0xaa").Hex())
	mockRegistrar = domain.Address(common.HexToAddress("0xbb").Hex())
)

func (s *ensSuite) label(label string) common.Hash {
	hash, err := LabelHash(label)
	s.Require().NoError(err)
	return hash
}

func (s *ensSuite) onAccounts(accounts ...domain.Address) {
	s.client.On("Accounts", mock.Anything).Return(accounts, nil)
}

func (s *ensSuite) TestFirstOwner() {
	s.onOwner("a.b.c.eth", domain.EmptyAddress)
	s.onOwner("b.c.eth", domain.EmptyAddress)
	s.onOwner("c.eth", mockOwner)

	chain, err := s.im.FirstOwner(bCtx.Background(), "a.b.c.eth")
	s.NoError(err)
	s.Require().NotNil(chain)
	s.Equal(mockOwner, chain.Owner)
	s.Equal([]string{"a", "b"}, chain.Unowned)
	s.Equal("c.eth", chain.Owned)
}

func (s *ensSuite) TestSetupOwnerClaimsLeastSpecificFirst() {
	s.onOwner("a.b.c.eth", domain.EmptyAddress)
	s.onOwner("b.c.eth", domain.EmptyAddress)
	s.onOwner("c.eth", mockOwner)
	s.onAccounts(mockOwner)

	var submitted [][]byte
	s.client.
		On("Transact", mock.Anything, mockOwner, domain.RegistryAddress, mock.Anything).
		Run(func(args mock.Arguments) {
			submitted = append(submitted, args.Get(3).([]byte))
		}).
		Return(domain.TxHash("0x01"), nil)

	got, err := s.im.SetupOwner(bCtx.Background(), "a.b.c.eth", nil, nil)
	s.NoError(err)
	s.Equal(mockOwner, got)

	// each subnode claim widens the owned frontier by one label, so the
	// shallower subdomain must be claimed before the deeper one
	claimB, err := baseabi.RegistryABI.Pack("setSubnodeOwner", s.node("c.eth"), s.label("b"), mockOwner.Common())
	s.Require().NoError(err)
	claimA, err := baseabi.RegistryABI.Pack("setSubnodeOwner", s.node("b.c.eth"), s.label("a"), mockOwner.Common())
	s.Require().NoError(err)
	s.Equal([][]byte{claimB, claimA}, submitted)
}

func (s *ensSuite) TestSetupOwnerNoopWhenAlreadyOwned() {
	s.onOwner("foo.eth", mockOwner)

	got, err := s.im.SetupOwner(bCtx.Background(), "foo.eth", nil, nil)
	s.NoError(err)
	s.Equal(mockOwner, got)
	s.client.AssertNotCalled(s.T(), "Transact", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ensSuite) TestSetupOwnerRejectsInvalidAddress() {
	s.onOwner("foo.eth", mockOwner)

	bogus := domain.Address("not-an-address")
	_, err := s.im.SetupOwner(bCtx.Background(), "foo.eth", &bogus, nil)
	s.ErrorIs(err, domain.ErrInvalidAddress)
}

func (s *ensSuite) TestSetupAddressIdempotent() {
	s.onOwner("foo.eth", mockOwner)
	s.onAccounts(mockOwner)
	s.onResolver("foo.eth", mockResolver)
	s.onSupports(mockResolver, domain.ExtendedResolverInterfaceId, false)
	s.client.
		On("Call", mock.Anything, mockResolver, mock.Anything, "addr", s.node("foo.eth")).
		Return([]interface{}{mockTarget.Common()}, nil)

	target := mockTarget
	hash, err := s.im.SetupAddress(bCtx.Background(), "foo.eth", &target, nil)
	s.NoError(err)
	s.Equal(domain.TxHash(""), hash)
	s.client.AssertNotCalled(s.T(), "Transact", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ensSuite) TestSetupAddressRoundTrip() {
	defaultResolver := domain.Address(common.HexToAddress("0x1f").Hex())

	s.onOwner("foo.eth", mockOwner)
	s.onAccounts(mockOwner)

	// no resolver registered yet: the pre-mutation forward lookup and
	// the default-resolver check both see the zero address
	s.client.
		On("Call", mock.Anything, domain.RegistryAddress, mock.Anything, "resolver", s.node("foo.eth")).
		Return([]interface{}{common.Address{}}, nil).Twice()
	s.onResolver("eth", domain.EmptyAddress)

	// resolver.eth points at the public resolver
	s.onResolver(domain.DefaultResolverName, mockResolver)
	s.onSupports(mockResolver, domain.ExtendedResolverInterfaceId, false)
	s.client.
		On("Call", mock.Anything, mockResolver, mock.Anything, "addr", s.node(domain.DefaultResolverName)).
		Return([]interface{}{defaultResolver.Common()}, nil)

	setResolverData, err := baseabi.RegistryABI.Pack("setResolver", s.node("foo.eth"), defaultResolver.Common())
	s.Require().NoError(err)
	setAddrData, err := baseabi.ResolverABI.Pack("setAddr", s.node("foo.eth"), mockTarget.Common())
	s.Require().NoError(err)
	s.client.
		On("Transact", mock.Anything, mockOwner, domain.RegistryAddress, setResolverData).
		Return(domain.TxHash("0x06"), nil).
		Once()
	s.client.
		On("Transact", mock.Anything, mockOwner, defaultResolver, setAddrData).
		Return(domain.TxHash("0x07"), nil).
		Once()

	target := mockTarget
	hash, err := s.im.SetupAddress(bCtx.Background(), "foo.eth", &target, nil)
	s.NoError(err)
	s.Equal(domain.TxHash("0x07"), hash)
	s.client.AssertExpectations(s.T())

	// the registry now reports the public resolver, which serves the
	// record; resolution returns the checksummed form
	s.client.
		On("Call", mock.Anything, domain.RegistryAddress, mock.Anything, "resolver", s.node("foo.eth")).
		Return([]interface{}{defaultResolver.Common()}, nil)
	s.onSupports(defaultResolver, domain.ExtendedResolverInterfaceId, false)
	s.client.
		On("Call", mock.Anything, defaultResolver, mock.Anything, "addr", s.node("foo.eth")).
		Return([]interface{}{mockTarget.ToLower().Common()}, nil)

	got, err := s.im.Address(bCtx.Background(), "foo.eth")
	s.NoError(err)
	s.Equal(mockTarget, got)
}

func (s *ensSuite) TestSetupAddressRejectsNonChecksum() {
	s.onOwner("foo.eth", mockOwner)
	s.onAccounts(mockOwner)

	lower := mockTarget.ToLower()
	_, err := s.im.SetupAddress(bCtx.Background(), "foo.eth", &lower, nil)
	s.ErrorIs(err, domain.ErrInvalidAddress)
}

func (s *ensSuite) TestSetupAddressUnauthorized() {
	stranger := domain.Address(common.HexToAddress("0xcc").Hex())
	s.onOwner("foo.eth", mockOwner)
	s.onAccounts(stranger)

	target := mockTarget
	_, err := s.im.SetupAddress(bCtx.Background(), "foo.eth", &target, nil)
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *ensSuite) TestSetupNameRejectsMismatch() {
	s.onResolver("foo.eth", mockResolver)
	s.onSupports(mockResolver, domain.ExtendedResolverInterfaceId, false)
	s.client.
		On("Call", mock.Anything, mockResolver, mock.Anything, "addr", s.node("foo.eth")).
		Return([]interface{}{mockTarget.Common()}, nil)

	other := domain.Address(common.HexToAddress("0xdd").Hex())
	_, err := s.im.SetupName(bCtx.Background(), "foo.eth", &other, nil)
	s.ErrorIs(err, domain.ErrAddressMismatch)
}

func (s *ensSuite) TestSetupNameClearWithoutControl() {
	s.onAccounts()

	target := mockTarget
	_, err := s.im.SetupName(bCtx.Background(), "", &target, nil)
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *ensSuite) TestSetupNameWritesReverseRecord() {
	// forward record already in place
	s.onResolver("foo.eth", mockResolver)
	s.onSupports(mockResolver, domain.ExtendedResolverInterfaceId, false)
	s.client.
		On("Call", mock.Anything, mockResolver, mock.Anything, "addr", s.node("foo.eth")).
		Return([]interface{}{mockTarget.Common()}, nil)
	s.onAccounts(mockTarget)
	s.onOwner(domain.ReverseRegistrarDomain, mockRegistrar)

	data, err := baseabi.ReverseRegistrarABI.Pack("setName", "foo.eth")
	s.Require().NoError(err)
	s.client.
		On("Transact", mock.Anything, mockTarget, mockRegistrar, data).
		Return(domain.TxHash("0x02"), nil)

	hash, err := s.im.SetupName(bCtx.Background(), "foo.eth", nil, nil)
	s.NoError(err)
	s.Equal(domain.TxHash("0x02"), hash)
}

func (s *ensSuite) TestSetText() {
	s.onOwner("foo.eth", mockOwner)
	s.onResolver("foo.eth", mockResolver)
	s.onSupports(mockResolver, domain.GetTextInterfaceId, true)

	data, err := baseabi.ResolverABI.Pack("setText", s.node("foo.eth"), "url", "https://example.com")
	s.Require().NoError(err)
	s.client.
		On("Transact", mock.Anything, mockOwner, mockResolver, data).
		Return(domain.TxHash("0x03"), nil)

	hash, err := s.im.SetText(bCtx.Background(), "foo.eth", "url", "https://example.com", nil)
	s.NoError(err)
	s.Equal(domain.TxHash("0x03"), hash)
}

func (s *ensSuite) TestSetTextSignerOverride() {
	delegate := domain.Address(common.HexToAddress("0xee").Hex())
	s.onOwner("foo.eth", mockOwner)
	s.onResolver("foo.eth", mockResolver)
	s.onSupports(mockResolver, domain.GetTextInterfaceId, true)
	s.client.
		On("Transact", mock.Anything, delegate, mockResolver, mock.Anything).
		Return(domain.TxHash("0x04"), nil)

	hash, err := s.im.SetText(bCtx.Background(), "foo.eth", "url", "x", &ens.TxConfig{From: delegate})
	s.NoError(err)
	s.Equal(domain.TxHash("0x04"), hash)
}
