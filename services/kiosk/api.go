package kiosk

import (
	"context"

	"github.com/MarcGrol/selfcheckout/services/checkout"
	"github.com/MarcGrol/selfcheckout/services/scanner"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

//go:generate mockgen -source=api.go -package kiosk -destination api_mock.go Cart,BarcodeScanner,Payment
type Cart interface {
	AddItem(c context.Context, barcode string, quantity int) bool
	StartNewCart(c context.Context) bool
	View(c context.Context) (shopmodel.CartView, error)
}

type BarcodeScanner interface {
	OnScan(f scanner.ScanFunc)
	Start(c context.Context) error
	Stop()
	Status() scanner.Status
}

type Payment interface {
	OnSuccess(f checkout.SuccessFunc)
	SetSurfaceOpen(c context.Context, open bool)
	ResetTransaction()
	State() checkout.State
}
