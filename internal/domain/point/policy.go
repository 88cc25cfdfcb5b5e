package point

import (
	"time"

	"booking-marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrInvalidPolicy = errs.New("invalid point policy")

type Policy struct {
	earningRatePercent    decimal.Decimal
	earningCap            int64
	influencerMultiplier  decimal.Decimal
	availabilityDelayDays int
	expiryDays            int
}

type PolicySpec struct {
	EarningRatePercent    decimal.Decimal
	EarningCap            int64
	InfluencerMultiplier  decimal.Decimal
	AvailabilityDelayDays int
	ExpiryDays            int
}

func NewPolicy(spec PolicySpec) (Policy, error) {
	switch {
	case spec.EarningRatePercent.IsNegative() || spec.EarningRatePercent.GreaterThan(decimal.NewFromInt(100)):
		return Policy{}, errs.Wrap(ErrInvalidPolicy, "earning rate")
	case spec.EarningCap <= 0:
		return Policy{}, errs.Wrap(ErrInvalidPolicy, "earning cap")
	case spec.InfluencerMultiplier.LessThan(decimal.NewFromInt(1)):
		return Policy{}, errs.Wrap(ErrInvalidPolicy, "influencer multiplier")
	case spec.AvailabilityDelayDays < 0:
		return Policy{}, errs.Wrap(ErrInvalidPolicy, "availability delay")
	case spec.ExpiryDays <= spec.AvailabilityDelayDays:
		return Policy{}, errs.Wrap(ErrInvalidPolicy, "expiry must be longer than the availability delay")
	}
	return Policy{
		earningRatePercent:    spec.EarningRatePercent,
		earningCap:            spec.EarningCap,
		influencerMultiplier:  spec.InfluencerMultiplier,
		availabilityDelayDays: spec.AvailabilityDelayDays,
		expiryDays:            spec.ExpiryDays,
	}, nil
}

// ParsePolicy builds a policy from its textual configuration.
func ParsePolicy(rate string, earningCap int64, multiplier string, delayDays, expiryDays int) (Policy, error) {
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return Policy{}, errs.Mark(errs.Wrap(err, "earning rate"), ErrInvalidPolicy)
	}
	m, err := decimal.NewFromString(multiplier)
	if err != nil {
		return Policy{}, errs.Mark(errs.Wrap(err, "influencer multiplier"), ErrInvalidPolicy)
	}
	return NewPolicy(PolicySpec{
		EarningRatePercent:    r,
		EarningCap:            earningCap,
		InfluencerMultiplier:  m,
		AvailabilityDelayDays: delayDays,
		ExpiryDays:            expiryDays,
	})
}

func (p Policy) ExpiryDays() int { return p.expiryDays }

// EarnedFor returns the points credited for a settled base amount:
// min(base * rate / 100, cap), then multiplied for influencers.
func (p Policy) EarnedFor(baseAmount int64, influencer bool) int64 {
	if baseAmount <= 0 {
		return 0
	}
	raw := decimal.NewFromInt(baseAmount).Mul(p.earningRatePercent).Div(decimal.NewFromInt(100)).Floor()
	capped := decimal.Min(raw, decimal.NewFromInt(p.earningCap))
	if influencer {
		capped = capped.Mul(p.influencerMultiplier).Floor()
	}
	return capped.IntPart()
}

// BonusFor applies the cap to a referral bonus. Multipliers do not apply.
func (p Policy) BonusFor(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	return min(amount, p.earningCap)
}

func (p Policy) AvailableAt(now time.Time) time.Time {
	return now.AddDate(0, 0, p.availabilityDelayDays)
}

func (p Policy) ExpiredBy(createdAt, now time.Time) bool {
	return !now.Before(createdAt.AddDate(0, 0, p.expiryDays))
}
