package payment

import "context"

// CheckoutParams describes one hosted-checkout session: a single line
// item priced in the smallest currency unit, plus the URLs the provider
// redirects back to.
type CheckoutParams struct {
	Name        string
	Description string
	Currency    string
	// AmountMinor is the unit price in the currency's smallest unit
	// (paise, cents).
	AmountMinor int64
	SuccessURL  string
	CancelURL   string
}

// CheckoutSession is the provider resource representing a pending
// payment. ID doubles as the booking idempotency key.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Provider creates hosted checkout sessions. The concrete payment flow
// (card capture, webhooks, refunds) lives entirely on the provider side.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
}
