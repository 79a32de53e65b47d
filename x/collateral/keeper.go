package collateral

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/hbtc-chain/bhvault/codec"
	sdk "github.com/hbtc-chain/bhvault/types"
	"github.com/hbtc-chain/bhvault/x/collateral/types"
)

// Keeper is the collateral ledger: every account has a free and a locked balance.
// Vault collateral is the locked balance.
type Keeper struct {
	key       sdk.StoreKey
	cdc       *codec.Codec
	codespace sdk.CodespaceType
}

func NewKeeper(cdc *codec.Codec, key sdk.StoreKey, codespace sdk.CodespaceType) Keeper {
	return Keeper{
		key:       key,
		cdc:       cdc,
		codespace: codespace,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

func (k Keeper) GetBalance(ctx sdk.Context, addr sdk.CUAddress) types.Balance {
	store := ctx.KVStore(k.key)
	bz := store.Get(types.BalanceKey(addr))
	if bz == nil {
		return types.NewBalance(addr)
	}
	var balance types.Balance
	k.cdc.MustUnmarshalJSON(bz, &balance)
	return balance
}

func (k Keeper) SetBalance(ctx sdk.Context, balance types.Balance) {
	store := ctx.KVStore(k.key)
	if balance.IsZero() {
		store.Delete(types.BalanceKey(balance.Address))
		return
	}
	store.Set(types.BalanceKey(balance.Address), k.cdc.MustMarshalJSON(balance))
}

func (k Keeper) IterateBalances(ctx sdk.Context, process func(types.Balance) (stop bool)) {
	store := ctx.KVStore(k.key)
	iter := sdk.KVStorePrefixIterator(store, types.BalanceKeyPrefix)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var balance types.Balance
		k.cdc.MustUnmarshalJSON(iter.Value(), &balance)
		if process(balance) {
			return
		}
	}
}

func (k Keeper) GetAllBalances(ctx sdk.Context) []types.Balance {
	balances := []types.Balance{}
	k.IterateBalances(ctx, func(b types.Balance) bool {
		balances = append(balances, b)
		return false
	})
	return balances
}

// Deposit credits free balance, e.g. a transfer of the collateral asset into the ledger.
func (k Keeper) Deposit(ctx sdk.Context, addr sdk.CUAddress, amount math.Uint) sdk.Error {
	if addr.Empty() {
		return sdk.ErrInvalidAddress("empty address")
	}
	balance := k.GetBalance(ctx, addr)
	balance.Free = balance.Free.Add(amount)
	k.SetBalance(ctx, balance)
	return nil
}

// Withdraw debits free balance.
func (k Keeper) Withdraw(ctx sdk.Context, addr sdk.CUAddress, amount math.Uint) sdk.Error {
	balance := k.GetBalance(ctx, addr)
	if balance.Free.LT(amount) {
		return types.ErrInsufficientFreeBalance(k.codespace,
			fmt.Sprintf("%s has %s free, needs %s", addr, balance.Free, amount))
	}
	balance.Free = balance.Free.Sub(amount)
	k.SetBalance(ctx, balance)
	return nil
}

func (k Keeper) GetFreeBalance(ctx sdk.Context, addr sdk.CUAddress) math.Uint {
	return k.GetBalance(ctx, addr).Free
}

// GetCollateral returns the locked balance of addr.
func (k Keeper) GetCollateral(ctx sdk.Context, addr sdk.CUAddress) math.Uint {
	return k.GetBalance(ctx, addr).Locked
}

// LockCollateral moves amount from free to locked.
func (k Keeper) LockCollateral(ctx sdk.Context, addr sdk.CUAddress, amount math.Uint) sdk.Error {
	balance := k.GetBalance(ctx, addr)
	if balance.Free.LT(amount) {
		return types.ErrInsufficientFreeBalance(k.codespace,
			fmt.Sprintf("%s has %s free, cannot lock %s", addr, balance.Free, amount))
	}
	balance.Free = balance.Free.Sub(amount)
	balance.Locked = balance.Locked.Add(amount)
	k.SetBalance(ctx, balance)
	return nil
}

// ReleaseCollateral moves amount from locked back to free.
func (k Keeper) ReleaseCollateral(ctx sdk.Context, addr sdk.CUAddress, amount math.Uint) sdk.Error {
	balance := k.GetBalance(ctx, addr)
	if balance.Locked.LT(amount) {
		return types.ErrInsufficientLockedBalance(k.codespace,
			fmt.Sprintf("%s has %s locked, cannot release %s", addr, balance.Locked, amount))
	}
	balance.Locked = balance.Locked.Sub(amount)
	balance.Free = balance.Free.Add(amount)
	k.SetBalance(ctx, balance)
	return nil
}

// SlashCollateral moves amount of the locked balance of from into the locked balance of to.
func (k Keeper) SlashCollateral(ctx sdk.Context, from, to sdk.CUAddress, amount math.Uint) sdk.Error {
	if to.Empty() {
		return sdk.ErrInvalidAddress("empty slash recipient")
	}
	src := k.GetBalance(ctx, from)
	if src.Locked.LT(amount) {
		return types.ErrInsufficientLockedBalance(k.codespace,
			fmt.Sprintf("%s has %s locked, cannot slash %s", from, src.Locked, amount))
	}
	if from.Equals(to) {
		return nil
	}
	src.Locked = src.Locked.Sub(amount)
	k.SetBalance(ctx, src)

	dst := k.GetBalance(ctx, to)
	dst.Locked = dst.Locked.Add(amount)
	k.SetBalance(ctx, dst)

	k.Logger(ctx).Info("slashed collateral", "from", from.String(), "to", to.String(), "amount", amount.String())
	return nil
}

// GetTotalLocked sums the locked balance of every account.
func (k Keeper) GetTotalLocked(ctx sdk.Context) math.Uint {
	total := math.ZeroUint()
	k.IterateBalances(ctx, func(b types.Balance) bool {
		total = total.Add(b.Locked)
		return false
	})
	return total
}
