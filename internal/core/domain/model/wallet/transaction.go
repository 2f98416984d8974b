package wallet

import (
	"errors"
	"fmt"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	// TransactionTypeCredit marks an amount added to the wallet.
	TransactionTypeCredit = "credit"
)

// Transaction statuses. The engine only writes completed entries; other
// statuses exist for records imported from the surrounding platform.
const (
	TransactionStatusCompleted = "completed"
	TransactionStatusPending   = "pending"
	TransactionStatusFailed    = "failed"
)

var (
	// ErrTransactionIsNotConstructed is returned when using an improperly initialized Transaction.
	ErrTransactionIsNotConstructed = errors.New("Transaction must be created via NewTransaction or RestoreTransaction constructors")
	// ErrDescriptionIsRequired is returned when appending a transaction without a justification.
	ErrDescriptionIsRequired = errs.NewValueIsRequiredError("description")
)

// Transaction is one immutable ledger entry justifying a wallet balance
// change. The description carries the human-readable settlement context
// (weight, rate, deduction or tier) and the reference names the triggering
// delivery.
type Transaction struct {
	id       kernel.UUID
	walletID kernel.UUID
	// amount is strictly positive for credits
	amount   decimal.Decimal
	currency string

	txType      string
	status      string
	description string
	// reference is the triggering delivery's identifier
	reference string

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewTransaction creates a completed ledger entry for the given wallet.
func NewTransaction(
	walletID kernel.UUID,
	amount kernel.Money,
	txType string,
	description string,
	reference string,
	now time.Time,
) (*Transaction, error) {
	return RestoreTransaction(
		kernel.NewUUID(), walletID,
		amount.Amount(), amount.Currency(),
		txType, TransactionStatusCompleted,
		description, reference, now,
	)
}

// RestoreTransaction reconstructs a Transaction from persistent storage.
func RestoreTransaction(
	id kernel.UUID,
	walletID kernel.UUID,
	amount decimal.Decimal,
	currency string,
	txType string,
	status string,
	description string,
	reference string,
	createdAt time.Time,
) (*Transaction, error) {
	t := &Transaction{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setWalletID(walletID),
		t.setAmount(amount),
		t.setDescription(description),
	); err != nil {
		return nil, err
	}

	t.currency = currency
	t.txType = txType
	t.status = status
	t.reference = reference
	t.createdAt = createdAt

	return t, nil
}

// Validate ensures the Transaction was properly constructed.
func (t *Transaction) Validate() error {
	if t == nil {
		return ErrTransactionIsNotConstructed
	}
	return t.guard.Validate(ErrTransactionIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (t *Transaction) ID() kernel.UUID { return t.id }

// WalletID returns the owning wallet's identifier.
func (t *Transaction) WalletID() kernel.UUID { return t.walletID }

// Amount returns the strictly positive credited amount.
func (t *Transaction) Amount() decimal.Decimal { return t.amount }

// Currency returns the currency the amount is denominated in.
func (t *Transaction) Currency() string { return t.currency }

// Type returns the transaction type.
func (t *Transaction) Type() string { return t.txType }

// Status returns the transaction status.
func (t *Transaction) Status() string { return t.status }

// Description returns the human-readable justification.
func (t *Transaction) Description() string { return t.description }

// Reference returns the triggering delivery's identifier.
func (t *Transaction) Reference() string { return t.reference }

// CreatedAt returns when the entry was appended.
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }

func (t *Transaction) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Transaction) setWalletID(walletID kernel.UUID) error {
	if err := walletID.Validate(); err != nil {
		return err
	}
	t.walletID = walletID
	return nil
}

func (t *Transaction) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("transaction amount",
			fmt.Errorf("%s is not positive", amount))
	}
	t.amount = amount
	return nil
}

func (t *Transaction) setDescription(description string) error {
	if description == "" {
		return ErrDescriptionIsRequired
	}
	t.description = description
	return nil
}
