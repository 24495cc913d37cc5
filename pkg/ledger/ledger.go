// Package ledger is a store-backed bank with a community pool account. Its
// balances live in a KV store mounted next to the module stores, so writes
// made inside a cache context are discarded together with the module state
// when the overlay is dropped.
package ledger

import (
	"context"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
)

const (
	// StoreKey is the ledger's store key.
	StoreKey = "ledger"
)

var balanceKeyPrefix = []byte{0x01}

// ErrBlockedAddress is returned for transfers to a blocked account.
var ErrBlockedAddress = errorsmod.Register(StoreKey, 2, "address is not allowed to receive funds")

// Ledger tracks balances per address and denom.
type Ledger struct {
	storeKey storetypes.StoreKey

	mu      sync.RWMutex
	blocked map[string]bool
}

// New returns a ledger reading and writing through key.
func New(key storetypes.StoreKey) *Ledger {
	return &Ledger{
		storeKey: key,
		blocked:  make(map[string]bool),
	}
}

// CommunityPoolAddress is the account holding community pool funds.
func CommunityPoolAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(distrtypes.ModuleName)
}

func balanceKey(addr sdk.AccAddress, denom string) []byte {
	key := append(append([]byte{}, balanceKeyPrefix...), address(addr)...)
	return append(key, []byte(denom)...)
}

// address length-prefixes addr so that denoms can follow it in a key.
func address(addr sdk.AccAddress) []byte {
	return append([]byte{byte(len(addr))}, addr...)
}

func (l *Ledger) store(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(l.storeKey)
}

// BlockAddress rejects any further transfer to addr.
func (l *Ledger) BlockAddress(addr sdk.AccAddress) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.blocked[addr.String()] = true
}

// UnblockAddress reverses BlockAddress.
func (l *Ledger) UnblockAddress(addr sdk.AccAddress) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.blocked, addr.String())
}

func (l *Ledger) isBlocked(addr sdk.AccAddress) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.blocked[addr.String()]
}

// GetBalance returns the balance of addr in denom.
func (l *Ledger) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	bz := l.store(ctx).Get(balanceKey(addr, denom))
	if bz == nil {
		return sdk.NewCoin(denom, math.ZeroInt())
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(errorsmod.Wrapf(err, "corrupt balance for %s", addr))
	}
	return sdk.NewCoin(denom, amount)
}

// GetAllBalances returns every non-zero balance of addr.
func (l *Ledger) GetAllBalances(ctx context.Context, addr sdk.AccAddress) sdk.Coins {
	prefix := append(append([]byte{}, balanceKeyPrefix...), address(addr)...)
	iterator := storetypes.KVStorePrefixIterator(l.store(ctx), prefix)
	defer iterator.Close()

	var balances sdk.Coins
	for ; iterator.Valid(); iterator.Next() {
		denom := string(iterator.Key()[len(prefix):])
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			panic(errorsmod.Wrapf(err, "corrupt balance for %s", addr))
		}
		balances = balances.Add(sdk.NewCoin(denom, amount))
	}
	return balances
}

func (l *Ledger) setBalance(ctx context.Context, addr sdk.AccAddress, coin sdk.Coin) {
	key := balanceKey(addr, coin.Denom)
	if coin.Amount.IsZero() {
		l.store(ctx).Delete(key)
		return
	}
	bz, err := coin.Amount.Marshal()
	if err != nil {
		panic(err)
	}
	l.store(ctx).Set(key, bz)
}

// Fund mints amt into addr.
func (l *Ledger) Fund(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidCoins, "%s", amt)
	}
	for _, coin := range amt {
		l.setBalance(ctx, addr, l.GetBalance(ctx, addr, coin.Denom).Add(coin))
	}
	return nil
}

// SendCoins moves amt from fromAddr to toAddr. Nothing moves when any denom
// is short.
func (l *Ledger) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidCoins, "%s", amt)
	}
	if l.isBlocked(toAddr) {
		return errorsmod.Wrapf(ErrBlockedAddress, "%s", toAddr)
	}
	for _, coin := range amt {
		balance := l.GetBalance(ctx, fromAddr, coin.Denom)
		if balance.Amount.LT(coin.Amount) {
			return errorsmod.Wrapf(sdkerrors.ErrInsufficientFunds, "spendable balance %s is smaller than %s", balance, coin)
		}
	}
	for _, coin := range amt {
		l.setBalance(ctx, fromAddr, l.GetBalance(ctx, fromAddr, coin.Denom).Sub(coin))
		l.setBalance(ctx, toAddr, l.GetBalance(ctx, toAddr, coin.Denom).Add(coin))
	}
	return nil
}

// FundCommunityPool moves amount from sender into the community pool.
func (l *Ledger) FundCommunityPool(ctx context.Context, amount sdk.Coins, sender sdk.AccAddress) error {
	return l.SendCoins(ctx, sender, CommunityPoolAddress(), amount)
}

// GetCommunityPool returns the community pool balance.
func (l *Ledger) GetCommunityPool(ctx context.Context) sdk.Coins {
	return l.GetAllBalances(ctx, CommunityPoolAddress())
}
