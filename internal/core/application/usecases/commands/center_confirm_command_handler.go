package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/shortfall"
	"settlement/internal/core/domain/model/wallet"
	"settlement/internal/core/domain/services"
	"settlement/internal/core/ports"
	"settlement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrSettlementCommitFailed is returned when the atomic settlement write
// could not commit. No partial ledger mutation is visible; the caller may
// retry the whole call, which recomputes from current ledger state.
var ErrSettlementCommitFailed = errors.New("settlement could not commit")

// defaultCurrency backs wallet credits when no per-kg rate is configured and
// the tariff snapshot therefore carries no currency.
const defaultCurrency = "IRR"

// CenterConfirmCommandHandler executes the settlement of one completed
// delivery: computes the customer and driver amounts, records a new shortfall
// when the pickup came in under its declared range, nets outstanding
// shortfalls from prior deliveries, and credits both wallets. All ledger
// writes commit as one unit or not at all.
type CenterConfirmCommandHandler struct {
	uowFactory     SettlementUoWFactory
	configProvider ports.SettlementConfigProvider
	orderProvider  ports.OrderProvider
	calculator     services.SettlementCalculator
}

// NewCenterConfirmCommandHandler creates a handler for settlement.
func NewCenterConfirmCommandHandler(uowFactory SettlementUoWFactory,
	configProvider ports.SettlementConfigProvider,
	orderProvider ports.OrderProvider) CenterConfirmCommandHandler {
	return CenterConfirmCommandHandler{
		uowFactory:     uowFactory,
		configProvider: configProvider,
		orderProvider:  orderProvider,
		calculator:     services.NewSettlementCalculator(),
	}
}

// Handle processes the settlement command.
//
// The outstanding shortfall set is loaded, and row-locked, before the new
// shortfall (if any) is inserted, so a delivery's own shortfall is only ever
// deducted by a later settlement. The row lock also serializes concurrent
// settlements of the same customer.
func (h *CenterConfirmCommandHandler) Handle(ctx context.Context, cmd CenterConfirmCommand) (CenterConfirmResult, error) {
	if err := cmd.Validate(); err != nil {
		return CenterConfirmResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CenterConfirmResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return CenterConfirmResult{}, err
	}

	if !aggregate.DriverID().IsEqual(cmd.DriverID()) {
		return CenterConfirmResult{}, errs.NewObjectNotFoundError("delivery", cmd.DeliveryID().String())
	}
	if err = aggregate.EnsureSettleable(); err != nil {
		return CenterConfirmResult{}, err
	}

	snapshot, err := h.configProvider.Snapshot(ctx)
	if err != nil {
		return CenterConfirmResult{}, err
	}

	orderInfo, err := h.orderProvider.GetOrder(ctx, aggregate.OrderID())
	if err != nil {
		return CenterConfirmResult{}, err
	}

	shortfallRepo := uow.ShortfallRepository()
	outstanding, err := shortfallRepo.GetOutstandingForCustomer(ctx, aggregate.CustomerID())
	if err != nil {
		return CenterConfirmResult{}, err
	}

	priorVisits, err := deliveryRepo.CountConfirmedForCustomer(ctx, aggregate.CustomerID(), aggregate.ID())
	if err != nil {
		return CenterConfirmResult{}, err
	}

	settlement, err := h.calculator.Calculate(aggregate.TotalWeight(),
		orderInfo.EstimatedWeightRange, outstanding, snapshot, priorVisits+1)
	if err != nil {
		return CenterConfirmResult{}, err
	}

	now := time.Now()

	if settlement.NewShortfall != nil {
		record, err := shortfall.NewShortfall(aggregate.CustomerID(), aggregate.ID(),
			settlement.NewShortfall.EstimatedRange, settlement.NewShortfall.MinimumWeight,
			settlement.NewShortfall.DeliveredWeight, now)
		if err != nil {
			return CenterConfirmResult{}, err
		}

		if err = shortfallRepo.Add(ctx, record); err != nil {
			return CenterConfirmResult{}, err
		}
	}

	for _, open := range outstanding {
		if err = open.Close(aggregate.ID(), now); err != nil {
			return CenterConfirmResult{}, err
		}
		if err = shortfallRepo.Update(ctx, open); err != nil {
			return CenterConfirmResult{}, err
		}
	}

	currency := settlement.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	walletRepo := uow.WalletRepository()
	reference := aggregate.ID().String()

	if settlement.CustomerAmount.IsPositive() {
		description := fmt.Sprintf("delivery settlement: weight %s kg, rate %s per kg, shortfall deduction %s",
			settlement.TotalWeight, settlement.Rate, settlement.Deduction)
		if err = creditWallet(ctx, walletRepo, aggregate.CustomerID(),
			settlement.CustomerAmount, currency, description, reference, now); err != nil {
			return CenterConfirmResult{}, err
		}
	}

	if settlement.DriverAmount.IsPositive() {
		description := fmt.Sprintf("delivery payout: weight %s kg, tier rate %s per kg, visit %d",
			settlement.TotalWeight, settlement.DriverRate, settlement.VisitCount)
		if err = creditWallet(ctx, walletRepo, aggregate.DriverID(),
			settlement.DriverAmount, currency, description, reference, now); err != nil {
			return CenterConfirmResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return CenterConfirmResult{}, fmt.Errorf("%w: %w", ErrSettlementCommitFailed, err)
	}

	result := CenterConfirmResult{
		TotalWeight:    settlement.TotalWeight.String(),
		CustomerAmount: settlement.CustomerAmount,
		DriverAmount:   settlement.DriverAmount,
		VisitCount:     settlement.VisitCount,
		Currency:       currency,
	}
	if settlement.NewShortfall != nil {
		result.Shortfall = &ShortfallNotice{
			Magnitude:      settlement.NewShortfall.Magnitude(),
			EstimatedRange: settlement.NewShortfall.EstimatedRange,
		}
	}

	return result, nil
}

// creditWallet credits the owner's wallet, creating it on first use.
func creditWallet(ctx context.Context, repo ports.WalletRepository, ownerID kernel.UUID,
	amount decimal.Decimal, currency string, description string, reference string, now time.Time) error {
	money, err := kernel.NewMoney(amount, currency)
	if err != nil {
		return err
	}

	owned, err := repo.GetByOwner(ctx, ownerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		owned, err = wallet.NewWallet(kernel.NewUUID(), ownerID)
		if err != nil {
			return err
		}
		if err = repo.Add(ctx, owned); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if _, err = owned.Credit(money, description, reference, now); err != nil {
		return err
	}

	return repo.Update(ctx, owned)
}
