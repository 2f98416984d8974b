package settingrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/tariff"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Configuration keys read by the settlement engine.
const (
	KeySettlementRate      = "settlement_rate"
	KeyWeightRangeMinimums = "weight_range_minimums"
	KeyDriverPayoutTiers   = "driver_payout_tiers"
)

// rateValue is the stored JSON shape of the per-kg settlement rate.
type rateValue struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// minimumValue is one stored entry of the weight-range minimum table.
type minimumValue struct {
	Range   string          `json:"range"`
	Minimum decimal.Decimal `json:"minimum"`
}

// tierValue is one stored entry of the driver payout tier table.
// A nil MaxVisits means the band is open-ended.
type tierValue struct {
	MinVisits int             `json:"min_visits"`
	MaxVisits *int            `json:"max_visits"`
	Rate      decimal.Decimal `json:"rate"`
}

// GormSettingProvider implements SettlementConfigProvider on top of the
// versioned app_settings table.
type GormSettingProvider struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormSettingProvider creates a new configuration provider.
func NewGormSettingProvider(db *gorm.DB, logger *slog.Logger) *GormSettingProvider {
	return &GormSettingProvider{
		db:     db,
		logger: logger.With("component", "setting_provider"),
	}
}

// Snapshot assembles the current settlement configuration. Each component
// that is missing or malformed is dropped from the snapshot with a Warn log;
// the settlement then proceeds with that component contributing zero.
// Only infrastructure failures are returned as errors.
func (p *GormSettingProvider) Snapshot(ctx context.Context) (tariff.Snapshot, error) {
	rate, err := p.loadRate(ctx)
	if err != nil {
		return tariff.Snapshot{}, err
	}

	minimums, err := p.loadMinimums(ctx)
	if err != nil {
		return tariff.Snapshot{}, err
	}

	tiers, err := p.loadTiers(ctx)
	if err != nil {
		return tariff.Snapshot{}, err
	}

	return tariff.NewSnapshot(rate, minimums, tiers), nil
}

func (p *GormSettingProvider) loadRate(ctx context.Context) (*tariff.Rate, error) {
	raw, found, err := p.latestValue(ctx, KeySettlementRate)
	if err != nil || !found {
		return nil, err
	}

	var value rateValue
	if err := json.Unmarshal(raw, &value); err != nil {
		p.logger.Warn("malformed settlement rate, settling without customer credit",
			"key", KeySettlementRate, "error", err)
		return nil, nil
	}

	rate, err := tariff.NewRate(value.Amount, value.Currency)
	if err != nil {
		p.logger.Warn("invalid settlement rate, settling without customer credit",
			"key", KeySettlementRate, "error", err)
		return nil, nil
	}

	return &rate, nil
}

func (p *GormSettingProvider) loadMinimums(ctx context.Context) ([]tariff.RangeMinimum, error) {
	raw, found, err := p.latestValue(ctx, KeyWeightRangeMinimums)
	if err != nil || !found {
		return nil, err
	}

	var values []minimumValue
	if err := json.Unmarshal(raw, &values); err != nil {
		p.logger.Warn("malformed weight-range minimums, skipping shortfall detection",
			"key", KeyWeightRangeMinimums, "error", err)
		return nil, nil
	}

	minimums := make([]tariff.RangeMinimum, 0, len(values))
	for _, value := range values {
		weight, weightErr := kernel.NewWeight(value.Minimum)
		if weightErr != nil {
			p.logger.Warn("invalid range minimum, skipping entry",
				"key", KeyWeightRangeMinimums, "range", value.Range, "error", weightErr)
			continue
		}

		minimum, minErr := tariff.NewRangeMinimum(value.Range, weight)
		if minErr != nil {
			p.logger.Warn("invalid range minimum, skipping entry",
				"key", KeyWeightRangeMinimums, "range", value.Range, "error", minErr)
			continue
		}

		minimums = append(minimums, minimum)
	}

	return minimums, nil
}

func (p *GormSettingProvider) loadTiers(ctx context.Context) ([]tariff.PayoutTier, error) {
	raw, found, err := p.latestValue(ctx, KeyDriverPayoutTiers)
	if err != nil || !found {
		return nil, err
	}

	var values []tierValue
	if err := json.Unmarshal(raw, &values); err != nil {
		p.logger.Warn("malformed driver payout tiers, settling without driver payout",
			"key", KeyDriverPayoutTiers, "error", err)
		return nil, nil
	}

	tiers := make([]tariff.PayoutTier, 0, len(values))
	for _, value := range values {
		tier, tierErr := tariff.NewPayoutTier(value.MinVisits, value.MaxVisits, value.Rate)
		if tierErr != nil {
			p.logger.Warn("invalid payout tier, skipping entry",
				"key", KeyDriverPayoutTiers, "min_visits", value.MinVisits, "error", tierErr)
			continue
		}

		tiers = append(tiers, tier)
	}

	return tiers, nil
}

// latestValue reads the highest version of a key. A missing key is reported
// with found=false and a Warn log rather than an error.
func (p *GormSettingProvider) latestValue(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := p.db.WithContext(ctx).
		Raw("SELECT value FROM app_settings WHERE key = ? ORDER BY version DESC LIMIT 1", key).
		Row().Scan(&value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
			p.logger.Warn("configuration key not set", "key", key)
			return nil, false, nil
		}
		return nil, false, err
	}

	return []byte(value), true, nil
}
