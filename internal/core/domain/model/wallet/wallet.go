// Package wallet provides the domain model for actor balances and their
// append-only audit trail. One Wallet exists per actor (customer or driver);
// every balance change is justified by exactly one immutable Transaction.
package wallet

import (
	"errors"

	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrWalletIsNotConstructed is returned when a Wallet was not created through
// NewWallet or RestoreWallet.
var ErrWalletIsNotConstructed = errors.New("Wallet must be created via NewWallet or RestoreWallet constructors")

// Wallet is the running balance of one actor together with the transaction
// log justifying it. Wallets are created lazily on first credit and persist
// for the actor's lifetime.
//
// Invariant: the balance always equals the sum of the transaction amounts.
// The engine never drives a balance negative.
type Wallet struct {
	id      kernel.UUID
	ownerID kernel.UUID
	balance decimal.Decimal

	// transactions holds the loaded audit trail plus entries appended
	// during the current settlement
	transactions []*Transaction

	guard guard.ConstructorGuard
}

// NewWallet creates an empty wallet for the given actor.
// Used on an actor's first credit.
func NewWallet(id kernel.UUID, ownerID kernel.UUID) (*Wallet, error) {
	return RestoreWallet(id, ownerID, decimal.Zero, nil)
}

// RestoreWallet reconstructs a Wallet from persistent storage.
func RestoreWallet(
	id kernel.UUID,
	ownerID kernel.UUID,
	balance decimal.Decimal,
	transactions []*Transaction,
) (*Wallet, error) {
	w := &Wallet{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setOwnerID(ownerID),
	); err != nil {
		return nil, err
	}

	for _, tx := range transactions {
		if err := tx.Validate(); err != nil {
			return nil, err
		}
	}

	w.balance = balance
	w.transactions = transactions

	return w, nil
}

// Validate ensures the Wallet was properly constructed.
func (w *Wallet) Validate() error {
	if w == nil {
		return ErrWalletIsNotConstructed
	}
	return w.guard.Validate(ErrWalletIsNotConstructed)
}

// ID returns the wallet's unique identifier.
func (w *Wallet) ID() kernel.UUID { return w.id }

// OwnerID returns the actor the wallet belongs to.
func (w *Wallet) OwnerID() kernel.UUID { return w.ownerID }

// Balance returns the current running balance.
func (w *Wallet) Balance() decimal.Decimal { return w.balance }

// Transactions returns the known audit trail, oldest first.
func (w *Wallet) Transactions() []*Transaction { return w.transactions }

// Credit adds a strictly positive amount to the balance and appends the
// justifying Transaction in the same step, keeping the conservation
// invariant. Returns the appended entry.
func (w *Wallet) Credit(
	amount kernel.Money,
	description string,
	reference string,
	now time.Time,
) (*Transaction, error) {
	if err := amount.Validate(); err != nil {
		return nil, err
	}

	tx, err := NewTransaction(w.id, amount, TransactionTypeCredit, description, reference, now)
	if err != nil {
		return nil, err
	}

	w.balance = w.balance.Add(tx.Amount())
	w.transactions = append(w.transactions, tx)
	return tx, nil
}

// IsBalanced reports whether the balance equals the sum of the loaded
// transaction amounts. Meaningful only when the full trail is loaded.
func (w *Wallet) IsBalanced() bool {
	sum := decimal.Zero
	for _, tx := range w.transactions {
		sum = sum.Add(tx.Amount())
	}
	return w.balance.Equal(sum)
}

func (w *Wallet) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Wallet) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	w.ownerID = ownerID
	return nil
}
