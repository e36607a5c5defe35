package backendclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/MarcGrol/selfcheckout/lib/myhttpclient"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

type CartClient struct {
	client
}

func NewCartClient(baseURL string, sender myhttpclient.HTTPSender, sessions SessionReader) *CartClient {
	return &CartClient{
		client: newClient(baseURL, sender, sessions, mylog.New("cartclient")),
	}
}

type addLineRequest struct {
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
}

type updateLineRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

func (cc *CartClient) CreateCart(c context.Context) (*shopmodel.Cart, error) {
	cart := shopmodel.Cart{}
	found, err := cc.do(c, http.MethodPost, "/cart", public, nil, &cart)
	if err != nil || !found {
		return nil, err
	}
	return &cart, nil
}

// GetCurrentCart returns nil when the session has no cart.
func (cc *CartClient) GetCurrentCart(c context.Context) (*shopmodel.Cart, error) {
	cart := shopmodel.Cart{}
	found, err := cc.do(c, http.MethodGet, "/cart", sessionScoped, nil, &cart)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil || !found {
		return nil, err
	}
	return &cart, nil
}

func (cc *CartClient) GetCartLines(c context.Context) ([]shopmodel.CartLine, error) {
	lines := []shopmodel.CartLine{}
	_, err := cc.do(c, http.MethodGet, "/cart/details", sessionScoped, nil, &lines)
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (cc *CartClient) AddLine(c context.Context, barcode string, quantity int) (*shopmodel.CartLine, error) {
	line := shopmodel.CartLine{}
	found, err := cc.do(c, http.MethodPost, "/cart/detail", sessionScoped, addLineRequest{Barcode: barcode, Quantity: quantity}, &line)
	if err != nil || !found {
		return nil, err
	}
	return &line, nil
}

func (cc *CartClient) UpdateLine(c context.Context, lineID string, quantity int) (*shopmodel.CartLine, error) {
	line := shopmodel.CartLine{}
	found, err := cc.do(c, http.MethodPatch, "/cart/detail", sessionScoped, updateLineRequest{ID: lineID, Quantity: quantity}, &line)
	if err != nil || !found {
		return nil, err
	}
	return &line, nil
}

func (cc *CartClient) DeleteLine(c context.Context, lineID string) error {
	_, err := cc.do(c, http.MethodDelete, "/cart/detail/"+url.PathEscape(lineID), sessionScoped, nil, nil)
	return err
}

func (cc *CartClient) DeleteAllLines(c context.Context, cartID string) error {
	_, err := cc.do(c, http.MethodDelete, "/cart/"+url.PathEscape(cartID), sessionScoped, nil, nil)
	return err
}
