package point

type Type string

const (
	TypeEarned          Type = "earned"
	TypeUsed            Type = "used"
	TypeExpired         Type = "expired"
	TypeRefunded        Type = "refunded"
	TypeAdminAdjustment Type = "admin_adjustment"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeEarned, TypeUsed, TypeExpired, TypeRefunded, TypeAdminAdjustment:
		return true
	default:
		return false
	}
}

type Reason string

const (
	ReasonReservationCompletion   Reason = "reservation_completion"
	ReasonReferralSignupBonus     Reason = "referral_signup_bonus"
	ReasonReferralFirstPurchase   Reason = "referral_first_purchase_bonus"
	ReasonReservationPayment      Reason = "reservation_payment"
	ReasonReservationCancellation Reason = "reservation_cancellation"
	ReasonExpiry                  Reason = "expiry"
	ReasonAdmin                   Reason = "admin"
)

func (r Reason) String() string {
	return string(r)
}

func (r Reason) IsReferral() bool {
	return r == ReasonReferralSignupBonus || r == ReasonReferralFirstPurchase
}
