// cmd/nearfix/checkout.go
package main

import (
	"context"

	"nearfix-client/internal/payment"
)

// terminalGateway stands in for the hosted checkout window. The user
// pastes the payment id and signature issued by the gateway, or presses
// enter to dismiss the checkout.
type terminalGateway struct {
	app         *app
	displayName string
}

func (g *terminalGateway) Open(ctx context.Context, order payment.Order) (payment.Confirmation, error) {
	g.app.printf("\n%s\nOrder %s — %.2f %s\n", g.displayName, order.OrderID, order.Amount, order.Currency)

	paymentID, ok := g.app.prompt("Payment id (enter to dismiss)")
	if !ok || paymentID == "" {
		return payment.Confirmation{}, payment.Dismissed
	}
	signature, ok := g.app.prompt("Signature")
	if !ok || signature == "" {
		return payment.Confirmation{}, payment.Dismissed
	}

	return payment.Confirmation{
		OrderID:   order.OrderID,
		PaymentID: paymentID,
		Signature: signature,
	}, nil
}
