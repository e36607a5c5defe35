package checkout

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/selfcheckout/lib/mycontext"
	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/myhttp"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

type webService struct {
	logger     mylog.Logger
	controller *Controller
	journal    *SalesJournal
}

func NewWebService(controller *Controller, journal *SalesJournal) *webService {
	return &webService{
		logger:     mylog.New("checkout"),
		controller: controller,
		journal:    journal,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/payment-methods", s.paymentMethods()).Methods("GET")
	router.HandleFunc("/api/checkout/transaction", s.getTransaction()).Methods("GET")
	router.HandleFunc("/api/checkout/transaction", s.createTransaction()).Methods("POST")
	router.HandleFunc("/api/checkout/transaction/refresh", s.refreshTransaction()).Methods("POST")
	router.HandleFunc("/api/checkout/transaction/cancel", s.cancelTransaction()).Methods("POST")
	router.HandleFunc("/api/checkout/transaction/reset", s.resetTransaction()).Methods("POST")
	router.HandleFunc("/api/checkout/transaction/invoice", s.sendInvoice()).Methods("POST")
	router.HandleFunc("/api/sales", s.listSales()).Methods("GET")

	return nil
}

type createTransactionRequest struct {
	PaymentMethod string `form:"payment_method" validate:"required"`
}

type invoiceRequest struct {
	Email string `form:"email" validate:"required,email"`
}

func (s *webService) paymentMethods() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, shopmodel.PaymentMethods)
	}
}

func (s *webService) getTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, s.controller.State())
	}
}

func (s *webService) createTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		req := createTransactionRequest{}
		err := myhttp.DecodeForm(r, &req)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}
		if !shopmodel.IsSupportedPaymentMethod(req.PaymentMethod) {
			writer.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("unsupported payment method %q", req.PaymentMethod))
			return
		}

		_, err = s.controller.createTransaction(c, req.PaymentMethod)
		if err != nil {
			writer.WriteError(c, w, 3, err)
			return
		}

		writer.Write(c, w, http.StatusCreated, s.controller.State())
	}
}

func (s *webService) refreshTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		orderID, err := s.currentOrderID()
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		err = s.controller.fetchTransaction(c, orderID)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, s.controller.State())
	}
}

func (s *webService) cancelTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		orderID, err := s.currentOrderID()
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		err = s.controller.cancelTransaction(c, orderID)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, s.controller.State())
	}
}

func (s *webService) resetTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		s.controller.ResetTransaction()

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, s.controller.State())
	}
}

func (s *webService) sendInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		req := invoiceRequest{}
		err := myhttp.DecodeForm(r, &req)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		err = s.controller.sendInvoice(c, req.Email)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Invoice sent"})
	}
}

func (s *webService) listSales() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		sales, err := s.journal.List(c)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, sales)
	}
}

func (s *webService) currentOrderID() (string, error) {
	state := s.controller.State()
	if state.Transaction == nil {
		return "", myerrors.NewNotFoundError(ErrNoTransaction)
	}
	return state.Transaction.OrderID, nil
}
