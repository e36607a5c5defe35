package backendclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/MarcGrol/selfcheckout/lib/myhttpclient"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

type ProductClient struct {
	client
}

func NewProductClient(baseURL string, sender myhttpclient.HTTPSender) *ProductClient {
	return &ProductClient{
		client: newClient(baseURL, sender, nil, mylog.New("productclient")),
	}
}

func (pc *ProductClient) ListProducts(c context.Context) ([]shopmodel.Product, error) {
	products := []shopmodel.Product{}
	_, err := pc.do(c, http.MethodGet, "/products", public, nil, &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// SearchByBarcode returns nil when no product has this exact barcode.
func (pc *ProductClient) SearchByBarcode(c context.Context, barcode string) (*shopmodel.Product, error) {
	product := shopmodel.Product{}
	found, err := pc.do(c, http.MethodGet, "/products/search?barcode="+url.QueryEscape(barcode), public, nil, &product)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

func (pc *ProductClient) GetRandomProduct(c context.Context) (*shopmodel.Product, error) {
	product := shopmodel.Product{}
	found, err := pc.do(c, http.MethodGet, "/products/random", public, nil, &product)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

func (pc *ProductClient) GetDonationProducts(c context.Context) ([]shopmodel.Product, error) {
	products := []shopmodel.Product{}
	_, err := pc.do(c, http.MethodGet, "/products/donations", public, nil, &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}
