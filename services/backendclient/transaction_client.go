package backendclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/MarcGrol/selfcheckout/lib/myhttpclient"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

type TransactionClient struct {
	client
}

func NewTransactionClient(baseURL string, sender myhttpclient.HTTPSender, sessions SessionReader) *TransactionClient {
	return &TransactionClient{
		client: newClient(baseURL, sender, sessions, mylog.New("transactionclient")),
	}
}

func (tc *TransactionClient) Name() string {
	return "backend"
}

type createTransactionRequest struct {
	PaymentType string `json:"payment_type"`
}

type invoiceRequest struct {
	Email string `json:"email"`
}

type transactionResponse struct {
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	PaymentType string `json:"payment_type"`
	ExpireTime  string `json:"expire_time"`
	QRISLink    string `json:"qris_link"`
}

func (r transactionResponse) toModel() *shopmodel.Transaction {
	trx := &shopmodel.Transaction{
		OrderID:     r.OrderID,
		Amount:      r.Amount,
		Status:      shopmodel.TransactionStatus(strings.ToUpper(r.Status)),
		PaymentType: r.PaymentType,
		ExpireTime:  r.ExpireTime,
		Payment:     shopmodel.PlainPayment{},
	}
	if r.PaymentType == shopmodel.PaymentTypeQRIS && r.QRISLink != "" {
		trx.Payment = shopmodel.QRISPayment{Link: r.QRISLink}
	}
	return trx
}

func transactionPath(orderID string) string {
	return "/transaction/" + url.PathEscape(orderID)
}

func (tc *TransactionClient) CreateTransaction(c context.Context, paymentMethod string) (*shopmodel.Transaction, error) {
	resp := transactionResponse{}
	found, err := tc.do(c, http.MethodPost, "/transaction", sessionScoped, createTransactionRequest{PaymentType: paymentMethod}, &resp)
	if err != nil || !found {
		return nil, err
	}
	return resp.toModel(), nil
}

func (tc *TransactionClient) GetTransaction(c context.Context, orderID string) (*shopmodel.Transaction, error) {
	resp := transactionResponse{}
	found, err := tc.do(c, http.MethodGet, transactionPath(orderID), sessionScoped, nil, &resp)
	if err != nil || !found {
		return nil, err
	}
	return resp.toModel(), nil
}

func (tc *TransactionClient) GetTransactionDetails(c context.Context, orderID string) ([]shopmodel.TransactionDetail, error) {
	details := []shopmodel.TransactionDetail{}
	_, err := tc.do(c, http.MethodGet, transactionPath(orderID)+"/details", sessionScoped, nil, &details)
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (tc *TransactionClient) CancelTransaction(c context.Context, orderID string) (*shopmodel.Transaction, error) {
	resp := transactionResponse{}
	found, err := tc.do(c, http.MethodPost, transactionPath(orderID)+"/cancel", sessionScoped, nil, &resp)
	if err != nil || !found {
		return nil, err
	}
	return resp.toModel(), nil
}

func (tc *TransactionClient) SendInvoice(c context.Context, orderID string, email string) error {
	_, err := tc.do(c, http.MethodPost, transactionPath(orderID)+"/invoice", sessionScoped, invoiceRequest{Email: email}, nil)
	return err
}
