package backendclient

import (
	"context"

	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

//go:generate mockgen -source=api.go -package backendclient -destination api_mock.go CartAPI,ProductAPI
type CartAPI interface {
	CreateCart(c context.Context) (*shopmodel.Cart, error)
	GetCurrentCart(c context.Context) (*shopmodel.Cart, error)
	GetCartLines(c context.Context) ([]shopmodel.CartLine, error)
	AddLine(c context.Context, barcode string, quantity int) (*shopmodel.CartLine, error)
	UpdateLine(c context.Context, lineID string, quantity int) (*shopmodel.CartLine, error)
	DeleteLine(c context.Context, lineID string) error
	DeleteAllLines(c context.Context, cartID string) error
}

type ProductAPI interface {
	ListProducts(c context.Context) ([]shopmodel.Product, error)
	SearchByBarcode(c context.Context, barcode string) (*shopmodel.Product, error)
	GetRandomProduct(c context.Context) (*shopmodel.Product, error)
	GetDonationProducts(c context.Context) ([]shopmodel.Product, error)
}
