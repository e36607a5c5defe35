package checkoutadyen

import (
	"context"
	"fmt"
	"strings"

	"github.com/adyen/adyen-go-api-library/v6/src/adyen"
	"github.com/adyen/adyen-go-api-library/v6/src/checkout"
	"github.com/adyen/adyen-go-api-library/v6/src/common"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
)

// PaymentLink is the part of an Adyen pay-by-link resource the kiosk needs.
type PaymentLink struct {
	ID     string
	URL    string
	Status string
}

//go:generate mockgen -source=payer.go -package checkoutadyen -destination payer_mock.go Payer
type Payer interface {
	UseAPIKey(key string)
	CreatePayByLink(ctx context.Context, req checkout.CreatePaymentLinkRequest) (PaymentLink, error)
	GetPayByLink(ctx context.Context, linkID string) (PaymentLink, error)
	ExpirePayByLink(ctx context.Context, linkID string) (PaymentLink, error)
}

type adyenPayer struct {
	client *adyen.APIClient
}

func NewPayer(environment string) Payer {
	return &adyenPayer{
		client: adyen.NewClient(&common.Config{
			Environment: common.Environment(strings.ToUpper(environment)),
			Debug:       false,
		}),
	}
}

func (p *adyenPayer) UseAPIKey(apiKey string) {
	p.client.GetConfig().ApiKey = apiKey
}

func (p *adyenPayer) CreatePayByLink(ctx context.Context, req checkout.CreatePaymentLinkRequest) (PaymentLink, error) {
	resp, _, err := p.client.Checkout.PaymentLinks(&req, ctx)
	if err != nil {
		return PaymentLink{}, myerrors.NewInvalidInputError(fmt.Errorf("error creating adyen payment link: %s", err))
	}
	return PaymentLink{ID: resp.Id, URL: resp.Url, Status: resp.Status}, nil
}

func (p *adyenPayer) GetPayByLink(ctx context.Context, linkID string) (PaymentLink, error) {
	resp, _, err := p.client.Checkout.GetPaymentLink(linkID, ctx)
	if err != nil {
		return PaymentLink{}, myerrors.NewInvalidInputError(fmt.Errorf("error getting adyen payment link: %s", err))
	}
	return PaymentLink{ID: resp.Id, URL: resp.Url, Status: resp.Status}, nil
}

// ExpirePayByLink is the only way to withdraw a link: Adyen has no cancel for payment links.
func (p *adyenPayer) ExpirePayByLink(ctx context.Context, linkID string) (PaymentLink, error) {
	resp, _, err := p.client.Checkout.UpdatePaymentLink(linkID, &checkout.UpdatePaymentLinkRequest{Status: linkStatusExpired}, ctx)
	if err != nil {
		return PaymentLink{}, myerrors.NewConflictError(fmt.Errorf("error expiring adyen payment link: %s", err))
	}
	return PaymentLink{ID: resp.Id, URL: resp.Url, Status: resp.Status}, nil
}
