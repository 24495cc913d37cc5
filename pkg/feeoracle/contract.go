// Package feeoracle is an in-process fee distribution contract. It answers
// the primary_distribution and non_primary_distribution smart queries the
// pool manager sends, and lets its owner update either distribution.
package feeoracle

import (
	"context"
	"encoding/json"
	"sync"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

const codespace = "feeoracle"

// Contract errors
var (
	ErrContractNotFound = errorsmod.Register(codespace, 2, "contract not found")
	ErrUnauthorized     = errorsmod.Register(codespace, 3, "sender is not the contract owner")
	ErrUnknownQuery     = errorsmod.Register(codespace, 4, "unknown query")
	ErrQueryFailed      = errorsmod.Register(codespace, 5, "query failed")
)

// QueryGasCost is charged to the query context for every smart query.
const QueryGasCost = 5_000

// Contract holds one distribution per category. The zero value is not
// usable; call New.
type Contract struct {
	address sdk.AccAddress
	owner   sdk.AccAddress

	mu         sync.RWMutex
	primary    poolmanagertypes.TakerFeeDistribution
	nonPrimary poolmanagertypes.TakerFeeDistribution

	// failure injection
	failErr     error
	panicValue  any
	rawResponse []byte
	gasPerQuery uint64
}

// New deploys a contract at address. Both distributions start at the given
// values.
func New(address, owner sdk.AccAddress, primary, nonPrimary poolmanagertypes.TakerFeeDistribution) *Contract {
	return &Contract{
		address:     address,
		owner:       owner,
		primary:     primary,
		nonPrimary:  nonPrimary,
		gasPerQuery: QueryGasCost,
	}
}

// Address returns the contract address.
func (c *Contract) Address() sdk.AccAddress {
	return c.address
}

// SetDistribution replaces one category's distribution. Only the owner may
// call it. The value is stored as given; the pool manager validates what it
// reads.
func (c *Contract) SetDistribution(sender sdk.AccAddress, isPrimary bool, dist poolmanagertypes.TakerFeeDistribution) error {
	if !sender.Equals(c.owner) {
		return errorsmod.Wrapf(ErrUnauthorized, "got %s", sender)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if isPrimary {
		c.primary = dist
	} else {
		c.nonPrimary = dist
	}
	return nil
}

// FailWith makes every query return err. A nil err clears the failure.
func (c *Contract) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failErr = err
}

// PanicWith makes every query panic with v. A nil v clears the panic.
func (c *Contract) PanicWith(v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panicValue = v
}

// RespondWith makes every query return bz verbatim. A nil bz restores the
// normal response.
func (c *Contract) RespondWith(bz []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rawResponse = bz
}

// SetQueryGas sets the gas consumed by each query.
func (c *Contract) SetQueryGas(gas uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gasPerQuery = gas
}

// QuerySmart implements the pool manager's ContractQuerier.
func (c *Contract) QuerySmart(ctx context.Context, contractAddr sdk.AccAddress, req []byte) ([]byte, error) {
	if !contractAddr.Equals(c.address) {
		return nil, errorsmod.Wrapf(ErrContractNotFound, "%s", contractAddr)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	sdk.UnwrapSDKContext(ctx).GasMeter().ConsumeGas(c.gasPerQuery, "fee oracle smart query")

	if c.panicValue != nil {
		panic(c.panicValue)
	}
	if c.failErr != nil {
		return nil, errorsmod.Wrap(ErrQueryFailed, c.failErr.Error())
	}

	var msg poolmanagertypes.FeeDistributionQueryMsg
	if err := json.Unmarshal(req, &msg); err != nil {
		return nil, errorsmod.Wrapf(ErrUnknownQuery, "decode: %s", err)
	}
	if c.rawResponse != nil {
		return c.rawResponse, nil
	}

	var dist poolmanagertypes.TakerFeeDistribution
	switch {
	case msg.PrimaryDistribution != nil && msg.NonPrimaryDistribution == nil:
		dist = c.primary
	case msg.NonPrimaryDistribution != nil && msg.PrimaryDistribution == nil:
		dist = c.nonPrimary
	default:
		return nil, errorsmod.Wrapf(ErrUnknownQuery, "%s", req)
	}
	return json.Marshal(poolmanagertypes.FeeDistributionResponse{Distribution: dist})
}
