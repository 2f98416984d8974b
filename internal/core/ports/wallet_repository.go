package ports

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/wallet"
)

// WalletRepository defines the persistence contract for wallet aggregates and
// their append-only transaction log.
type WalletRepository interface {
	// Add persists a new wallet aggregate. Wallets are created lazily on an
	// actor's first credit.
	Add(ctx context.Context, aggregate *wallet.Wallet) error

	// Update persists the wallet balance and any newly appended transactions.
	// Existing transaction rows are never modified.
	Update(ctx context.Context, aggregate *wallet.Wallet) error

	// GetByOwner retrieves the wallet of the given actor.
	// Returns errs.ObjectNotFoundError when the actor has no wallet yet.
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*wallet.Wallet, error)
}
