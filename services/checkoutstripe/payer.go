package checkoutstripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
)

//go:generate mockgen -source=payer.go -package checkoutstripe -destination payer_mock.go Payer
type Payer interface {
	UseAPIKey(key string)
	CreateCheckoutSession(ctx context.Context, params stripe.CheckoutSessionParams) (stripe.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (stripe.CheckoutSession, error)
	ExpireCheckoutSession(ctx context.Context, sessionID string) (stripe.CheckoutSession, error)
}

type stripePayer struct{}

func NewPayer() Payer {
	return &stripePayer{}
}

func (p *stripePayer) UseAPIKey(apiKey string) {
	stripe.Key = apiKey
}

func (p *stripePayer) CreateCheckoutSession(ctx context.Context, params stripe.CheckoutSessionParams) (stripe.CheckoutSession, error) {
	params.Context = ctx
	s, err := session.New(&params)
	if err != nil {
		return stripe.CheckoutSession{}, myerrors.NewInvalidInputError(fmt.Errorf("error creating stripe session: %s", err))
	}

	return *s, nil
}

func (p *stripePayer) GetCheckoutSession(ctx context.Context, sessionID string) (stripe.CheckoutSession, error) {
	s, err := session.Get(sessionID, &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return stripe.CheckoutSession{}, myerrors.NewInvalidInputError(fmt.Errorf("error getting stripe session: %s", err))
	}

	return *s, nil
}

func (p *stripePayer) ExpireCheckoutSession(ctx context.Context, sessionID string) (stripe.CheckoutSession, error) {
	s, err := session.Expire(sessionID, &stripe.CheckoutSessionExpireParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return stripe.CheckoutSession{}, myerrors.NewConflictError(fmt.Errorf("error expiring stripe session: %s", err))
	}

	return *s, nil
}
