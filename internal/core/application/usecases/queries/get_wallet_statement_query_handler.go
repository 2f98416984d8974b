package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetWalletStatementQueryHandler reads a wallet and its transaction log from
// the database for display. The balance is read as stored; the conservation
// invariant is enforced at write time by the aggregate.
type GetWalletStatementQueryHandler struct {
	db *gorm.DB
}

// NewGetWalletStatementQueryHandler creates a handler for wallet statements.
// Requires a GORM database connection for query execution.
func NewGetWalletStatementQueryHandler(db *gorm.DB) GetWalletStatementQueryHandler {
	return GetWalletStatementQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the actor
// has no wallet yet, which is the case until their first credit.
func (h GetWalletStatementQueryHandler) Handle(
	ctx context.Context,
	query GetWalletStatementQuery,
) (GetWalletStatementQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWalletStatementQueryResponse{}, err
	}

	var walletID uuid.UUID
	var balance decimal.Decimal

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, balance
		FROM wallets
		WHERE owner_id = ?
	`, query.OwnerID().Bytes()).Row()
	if err := row.Scan(&walletID, &balance); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
			return GetWalletStatementQueryResponse{},
				errs.NewObjectNotFoundError("wallet", query.OwnerID().String())
		}
		return GetWalletStatementQueryResponse{}, err
	}

	id, err := kernel.UUIDFromBytes(walletID[:])
	if err != nil {
		return GetWalletStatementQueryResponse{}, err
	}

	response := GetWalletStatementQueryResponse{
		WalletID:     id,
		OwnerID:      query.OwnerID(),
		Balance:      balance,
		Transactions: make([]WalletTransactionResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			amount,
			currency,
			tx_type,
			status,
			description,
			reference,
			created_at
		FROM transactions
		WHERE wallet_id = ?
		ORDER BY created_at ASC
	`, walletID).Rows()
	if err != nil {
		return GetWalletStatementQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var tx WalletTransactionResponse
		var txID uuid.UUID
		var amount decimal.Decimal
		var createdAt time.Time

		err = rows.Scan(
			&txID,
			&amount,
			&tx.Currency,
			&tx.Type,
			&tx.Status,
			&tx.Description,
			&tx.Reference,
			&createdAt,
		)
		if err != nil {
			return GetWalletStatementQueryResponse{}, err
		}

		entryID, idErr := kernel.UUIDFromBytes(txID[:])
		if idErr != nil {
			return GetWalletStatementQueryResponse{}, idErr
		}
		tx.ID = entryID
		tx.Amount = amount
		tx.CreatedAt = createdAt
		response.Transactions = append(response.Transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return GetWalletStatementQueryResponse{}, err
	}

	return response, nil
}
