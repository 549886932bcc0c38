package paypal

import (
	"context"
	"fmt"

	"church-app/config"

	paypalsdk "github.com/plutov/paypal/v4"
)

// Payment is the slice of the gateway's response the rest of the app
// cares about.
type Payment struct {
	ID          string
	ApprovalURL string
	PayerID     string
	Status      string
}

// Gateway is the payment collaborator: create an approval redirect, then
// execute once the payer comes back. Handlers depend on this interface so
// tests can swap in a fake.
type Gateway interface {
	CreatePayment(ctx context.Context, amount float64, currency, returnURL, cancelURL string) (*Payment, error)
	ExecutePayment(ctx context.Context, paymentID, payerID string) (*Payment, error)
}

// Client is the production Gateway backed by the PayPal Orders API.
type Client struct {
	pc *paypalsdk.Client
}

func NewClient(cfg config.PayPalConfig) (*Client, error) {
	pc, err := paypalsdk.NewClient(cfg.ClientID, cfg.Secret, cfg.APIBase)
	if err != nil {
		return nil, fmt.Errorf("paypal client: %w", err)
	}
	return &Client{pc: pc}, nil
}

func (c *Client) CreatePayment(ctx context.Context, amount float64, currency, returnURL, cancelURL string) (*Payment, error) {
	if _, err := c.pc.GetAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("paypal token: %w", err)
	}

	order, err := c.pc.CreateOrder(ctx,
		paypalsdk.OrderIntentCapture,
		[]paypalsdk.PurchaseUnitRequest{
			{
				Amount: &paypalsdk.PurchaseUnitAmount{
					Currency: currency,
					Value:    fmt.Sprintf("%.2f", amount),
				},
			},
		},
		nil,
		&paypalsdk.ApplicationContext{
			ReturnURL: returnURL,
			CancelURL: cancelURL,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("paypal create order: %w", err)
	}

	p := &Payment{ID: order.ID, Status: string(order.Status)}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			p.ApprovalURL = link.Href
		}
	}
	if p.ApprovalURL == "" {
		return nil, fmt.Errorf("paypal create order: no approval link in response")
	}
	return p, nil
}

func (c *Client) ExecutePayment(ctx context.Context, paymentID, payerID string) (*Payment, error) {
	if _, err := c.pc.GetAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("paypal token: %w", err)
	}

	capture, err := c.pc.CaptureOrder(ctx, paymentID, paypalsdk.CaptureOrderRequest{})
	if err != nil {
		return nil, fmt.Errorf("paypal capture order: %w", err)
	}

	p := &Payment{ID: capture.ID, PayerID: payerID, Status: string(capture.Status)}
	if capture.Payer != nil && capture.Payer.PayerID != "" {
		p.PayerID = capture.Payer.PayerID
	}
	return p, nil
}
