package domain

import "time"

// PaymentMethod enumerates how a fee was settled.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodPayconiq     PaymentMethod = "PAYCONIQ"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// PaymentMethods lists every accepted method, for validation rules.
func PaymentMethods() []interface{} {
	return []interface{}{
		PaymentMethodCash,
		PaymentMethodBankTransfer,
		PaymentMethodPayconiq,
		PaymentMethodOther,
	}
}

// Payment carries the payment status shared by yearly memberships,
// sponsorship agreements and event registrations. Marking a payment records a
// discrete event: method and date belong to that event, so marking twice is
// rejected rather than treated as idempotent.
type Payment struct {
	Received bool           `json:"received"`
	Method   *PaymentMethod `json:"method,omitempty"`
	Date     *time.Time     `json:"date,omitempty"`
}

// MarkReceived fills the payment in place. The caller decides which entity
// name goes into the AlreadyPaid error.
func (p *Payment) MarkReceived(entity string, method PaymentMethod, at time.Time) error {
	if p.Received {
		return AlreadyPaid(entity)
	}
	p.Received = true
	p.Method = &method
	p.Date = &at
	return nil
}
