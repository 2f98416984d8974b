package queries

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetWalletStatementQueryIsNotConstructed = errors.New(
	"GetWalletStatementQuery must be created via NewGetWalletStatementQuery constructor",
)

// GetWalletStatementQuery retrieves an actor's balance together with the
// transaction log justifying it.
type GetWalletStatementQuery struct {
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWalletStatementQuery creates a statement query for the given owner.
func NewGetWalletStatementQuery(ownerID kernel.UUID) (GetWalletStatementQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetWalletStatementQuery{}, err
	}

	return GetWalletStatementQuery{
		ownerID: ownerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWalletStatementQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletStatementQueryIsNotConstructed)
}

// OwnerID returns the wallet owner.
func (q GetWalletStatementQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// WalletTransactionResponse is one ledger entry in the statement.
type WalletTransactionResponse struct {
	ID          kernel.UUID
	Amount      decimal.Decimal
	Currency    string
	Type        string
	Status      string
	Description string
	Reference   string
	CreatedAt   time.Time
}

// GetWalletStatementQueryResponse is the balance plus the full entry log,
// newest entries last.
type GetWalletStatementQueryResponse struct {
	WalletID     kernel.UUID
	OwnerID      kernel.UUID
	Balance      decimal.Decimal
	Transactions []WalletTransactionResponse
}
