package product

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"golang.org/x/sync/errgroup"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mynotify"
	"github.com/MarcGrol/selfcheckout/services/backendclient"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

const (
	labelWidth  = 400
	labelHeight = 120
	maxLabel    = 80
)

// Showcase is what the test label screen shows: one random product to scan plus the donation products.
type Showcase struct {
	Product   *shopmodel.Product  `json:"product"`
	Donations []shopmodel.Product `json:"donations"`
}

type Service struct {
	products backendclient.ProductAPI
	notifier mynotify.Notifier
	logger   mylog.Logger
}

func NewService(products backendclient.ProductAPI, notifier mynotify.Notifier) *Service {
	return &Service{
		products: products,
		notifier: notifier,
		logger:   mylog.New("product"),
	}
}

func (s *Service) ListProducts(c context.Context) ([]shopmodel.Product, error) {
	products, err := s.products.ListProducts(c)
	if err != nil {
		s.notifier.Error(c, "Failed to fetch products", backendclient.ErrorMessage(err))
		return nil, err
	}
	return orEmpty(products), nil
}

func (s *Service) RandomProduct(c context.Context) (*shopmodel.Product, error) {
	product, err := s.products.GetRandomProduct(c)
	if err != nil {
		s.notifier.Error(c, "Failed to fetch product", backendclient.ErrorMessage(err))
		return nil, err
	}
	if product == nil {
		return nil, myerrors.NewNotFoundError(fmt.Errorf("No available product"))
	}
	return product, nil
}

func (s *Service) DonationProducts(c context.Context) ([]shopmodel.Product, error) {
	products, err := s.products.GetDonationProducts(c)
	if err != nil {
		s.notifier.Error(c, "Failed to fetch products", backendclient.ErrorMessage(err))
		return nil, err
	}
	return orEmpty(products), nil
}

// Showcase fetches both halves concurrently; a missing random product does not fail the donations.
func (s *Service) Showcase(c context.Context) (Showcase, error) {
	result := Showcase{Donations: []shopmodel.Product{}}

	eg, egCtx := errgroup.WithContext(c)
	eg.Go(func() error {
		product, err := s.RandomProduct(egCtx)
		if err != nil {
			if myerrors.GetHTTPStatus(err) == http.StatusNotFound {
				return nil
			}
			return err
		}
		result.Product = product
		return nil
	})
	eg.Go(func() error {
		donations, err := s.DonationProducts(egCtx)
		if err != nil {
			return err
		}
		result.Donations = donations
		return nil
	})
	err := eg.Wait()
	if err != nil {
		return Showcase{}, err
	}

	return result, nil
}

// RenderLabel writes a Code128 label for the barcode as PNG.
func RenderLabel(w io.Writer, barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" || len(barcode) > maxLabel {
		return myerrors.NewInvalidInputErrorf("invalid barcode '%s'", barcode)
	}

	matrix, err := oned.NewCode128Writer().Encode(barcode, gozxing.BarcodeFormat_CODE_128, labelWidth, labelHeight, nil)
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("error encoding barcode '%s': %s", barcode, err))
	}

	err = png.Encode(w, matrix)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error writing barcode label: %s", err))
	}
	return nil
}

func orEmpty(products []shopmodel.Product) []shopmodel.Product {
	if products == nil {
		return []shopmodel.Product{}
	}
	return products
}
