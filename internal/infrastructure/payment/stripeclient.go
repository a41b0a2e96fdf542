// Package payment wraps stripe-go for the coin recharge flow: creating a
// Checkout session for a fixed coin package and verifying the webhook
// that confirms the charge via Stripe webhook confirmation.
package payment

import (
	"errors"
	"fmt"
	"strconv"

	stripeapi "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/checkout/session"
	"github.com/stripe/stripe-go/v72/webhook"
)

type Client struct {
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewClient(secretKey, webhookSecret, successURL, cancelURL string) *Client {
	stripeapi.Key = secretKey
	return &Client{webhookSecret: webhookSecret, successURL: successURL, cancelURL: cancelURL}
}

type CreateRechargeSessionRequest struct {
	UserID        uint
	AmountCents   int64
	Currency      string
	CoinsGranted  int64
	CustomerEmail string
}

// CreateRechargeSession builds a Stripe Checkout session for a one-time
// coin purchase, tagging the session metadata with the user ID and coin
// amount so the webhook handler can credit the right account without a
// round trip back to the database first.
func (c *Client) CreateRechargeSession(req CreateRechargeSessionRequest) (*stripeapi.CheckoutSession, error) {
	if req.AmountCents <= 0 {
		return nil, errors.New("stripe: recharge amount must be positive")
	}

	params := &stripeapi.CheckoutSessionParams{
		Mode:               stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripeapi.StringSlice([]string{"card"}),
		SuccessURL:         stripeapi.String(c.successURL),
		CancelURL:          stripeapi.String(c.cancelURL),
		Metadata: map[string]string{
			"user_id":       strconv.FormatUint(uint64(req.UserID), 10),
			"coins_granted": strconv.FormatInt(req.CoinsGranted, 10),
		},
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				Quantity: stripeapi.Int64(1),
				PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
					Currency: stripeapi.String(req.Currency),
					ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripeapi.String("Coin recharge"),
					},
					UnitAmount: stripeapi.Int64(req.AmountCents),
				},
			},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripeapi.String(req.CustomerEmail)
	}

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}
	return s, nil
}

// RechargeCompletedEvent is the normalized subset of a
// checkout.session.completed webhook the recharge use case needs.
type RechargeCompletedEvent struct {
	EventID      string
	SessionID    string
	UserID       uint
	CoinsGranted int64
	AmountCents  int64
	Currency     string
}

// ParseWebhook verifies the signature and, for checkout.session.completed
// events, decodes the recharge metadata back out. Other event types return
// ok=false so the caller can 200 them without further processing.
func (c *Client) ParseWebhook(payload []byte, signature string) (event RechargeCompletedEvent, ok bool, err error) {
	if c.webhookSecret == "" {
		return event, false, errors.New("stripe: webhook secret not configured")
	}
	evt, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return event, false, fmt.Errorf("stripe: construct event: %w", err)
	}
	if evt.Type != "checkout.session.completed" {
		return event, false, nil
	}

	var checkout stripeapi.CheckoutSession
	if err := checkout.UnmarshalJSON(evt.Data.Raw); err != nil {
		return event, false, fmt.Errorf("stripe: decode checkout session: %w", err)
	}

	userID, err := strconv.ParseUint(checkout.Metadata["user_id"], 10, 64)
	if err != nil {
		return event, false, fmt.Errorf("stripe: missing or invalid user_id metadata: %w", err)
	}
	coins, err := strconv.ParseInt(checkout.Metadata["coins_granted"], 10, 64)
	if err != nil {
		return event, false, fmt.Errorf("stripe: missing or invalid coins_granted metadata: %w", err)
	}

	return RechargeCompletedEvent{
		EventID:      evt.ID,
		SessionID:    checkout.ID,
		UserID:       uint(userID),
		CoinsGranted: coins,
		AmountCents:  checkout.AmountTotal,
		Currency:     string(checkout.Currency),
	}, true, nil
}
