// Package walletrepo provides data transfer objects and mapping functions for wallet persistence.
// A wallet row carries the cached balance; its transactions are the append-only ledger.
package walletrepo

import (
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/wallet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletDTO represents the database structure for persisting wallet aggregates.
type WalletDTO struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OwnerID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"`
	Balance      decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Transactions []TransactionDTO `gorm:"foreignKey:WalletID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for wallet entities.
// Overrides GORM's default naming convention to use "wallets" instead of "wallet_dtos".
func (WalletDTO) TableName() string {
	return "wallets"
}

// TransactionDTO represents the database structure for persisting ledger entries.
// Rows are never updated after insert.
type TransactionDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WalletID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency    string          `gorm:"type:varchar(8);not null"`
	TxType      string          `gorm:"column:tx_type;type:varchar(32);not null"`
	Status      string          `gorm:"type:varchar(32);not null"`
	Description string          `gorm:"type:text;not null"`
	Reference   string          `gorm:"type:varchar(64);not null;index"`
	CreatedAt   time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for ledger entries.
// Overrides GORM's default naming convention to use "transactions" instead of "transaction_dtos".
func (TransactionDTO) TableName() string {
	return "transactions"
}

// fromDomain converts a wallet domain aggregate to its database representation.
func fromDomain(aggregate *wallet.Wallet) WalletDTO {
	walletID := aggregate.ID().Bytes()
	transactions := make([]TransactionDTO, 0, len(aggregate.Transactions()))

	for _, tx := range aggregate.Transactions() {
		transactions = append(transactions, TransactionDTO{
			ID:          tx.ID().Bytes(),
			WalletID:    walletID,
			Amount:      tx.Amount(),
			Currency:    tx.Currency(),
			TxType:      tx.Type(),
			Status:      tx.Status(),
			Description: tx.Description(),
			Reference:   tx.Reference(),
			CreatedAt:   tx.CreatedAt(),
		})
	}

	return WalletDTO{
		ID:           walletID,
		OwnerID:      aggregate.OwnerID().Bytes(),
		Balance:      aggregate.Balance(),
		Transactions: transactions,
	}
}

// toDomain converts a database DTO to a wallet domain aggregate.
func toDomain(dto WalletDTO) (*wallet.Wallet, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	transactions := make([]*wallet.Transaction, 0, len(dto.Transactions))
	for _, txDto := range dto.Transactions {
		tx, txErr := transactionToDomain(txDto)
		if txErr != nil {
			return nil, txErr
		}
		transactions = append(transactions, tx)
	}

	return wallet.RestoreWallet(id, ownerID, dto.Balance, transactions)
}

// transactionToDomain converts a transaction DTO to domain entity.
func transactionToDomain(dto TransactionDTO) (*wallet.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	walletID, err := kernel.UUIDFromBytes(dto.WalletID[:])
	if err != nil {
		return nil, err
	}

	return wallet.RestoreTransaction(
		id,
		walletID,
		dto.Amount,
		dto.Currency,
		dto.TxType,
		dto.Status,
		dto.Description,
		dto.Reference,
		dto.CreatedAt,
	)
}
