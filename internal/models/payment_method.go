package models

type PaymentMethodKind string

const (
	PaymentMethodCash         PaymentMethodKind = "cash"
	PaymentMethodCard         PaymentMethodKind = "card"
	PaymentMethodBankTransfer PaymentMethodKind = "bank_transfer"
	PaymentMethodMobile       PaymentMethodKind = "mobile_payment"
)

func (k PaymentMethodKind) Valid() bool {
	switch k {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodMobile:
		return true
	}
	return false
}

// PaymentMethodEntry: one instrument contributing to a shift's cash
// reconciliation. Entries are never edited in place; the set for a shift is
// replaced by removing and re-adding.
type PaymentMethodEntry struct {
	ID        string            `json:"id,omitempty"`
	ShiftID   string            `json:"shift_id,omitempty"`
	Kind      PaymentMethodKind `json:"kind"` // cash / card / bank_transfer / mobile_payment
	Amount    float64           `json:"amount"`
	Reference string            `json:"reference,omitempty"` // free-text note (slip number etc.)
}
