// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"settlement/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// ShortfallRepoFactory provides access to shortfall repository within a transaction.
	ShortfallRepoFactory interface {
		ShortfallRepository() ports.ShortfallRepository
	}

	// WalletRepoFactory provides access to wallet repository within a transaction.
	WalletRepoFactory interface {
		WalletRepository() ports.WalletRepository
	}

	// SurveyRepoFactory provides access to survey repository within a transaction.
	SurveyRepoFactory interface {
		SurveyRepository() ports.SurveyRepository
	}

	// DeliveryUoW manages transactions for delivery-only operations.
	// Used by the state transition and item commands.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// SurveyUoW manages transactions for survey submission, which reads the
	// delivery to check its confirmation state.
	SurveyUoW interface {
		TxManager
		DeliveryRepoFactory
		SurveyRepoFactory
	}

	// SurveyUoWFactory creates new survey unit of work instances.
	SurveyUoWFactory interface {
		Create() SurveyUoW
	}

	// SettlementUoW manages the atomic settlement transaction spanning the
	// delivery, shortfall, and wallet ledgers.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   deliveryRepo := uow.DeliveryRepository()
	//   shortfallRepo := uow.ShortfallRepository()
	//   walletRepo := uow.WalletRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	SettlementUoW interface {
		TxManager
		DeliveryRepoFactory
		ShortfallRepoFactory
		WalletRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}
)
