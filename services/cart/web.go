package cart

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/selfcheckout/lib/mycontext"
	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/myhttp"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
)

type webService struct {
	logger mylog.Logger
	engine *Engine
}

func NewWebService(engine *Engine) *webService {
	return &webService{
		logger: mylog.New("cart"),
		engine: engine,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/cart", s.getCart()).Methods("GET")
	router.HandleFunc("/api/cart", s.clearCart()).Methods("DELETE")
	router.HandleFunc("/api/cart/new", s.startNewCart()).Methods("POST")
	router.HandleFunc("/api/cart/items", s.addItem()).Methods("POST")
	router.HandleFunc("/api/cart/items/{lineID}", s.updateQuantity()).Methods("PATCH")
	router.HandleFunc("/api/cart/items/{lineID}", s.removeItem()).Methods("DELETE")

	return nil
}

type addItemRequest struct {
	Barcode  string `form:"barcode" validate:"required"`
	Quantity int    `form:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `form:"quantity"`
}

func (s *webService) getCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		s.writeView(c, w, http.StatusOK)
	}
}

// addItem handles manual barcode entry.
func (s *webService) addItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := addItemRequest{}
		err := myhttp.DecodeForm(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}
		req.Barcode = strings.TrimSpace(req.Barcode)
		if req.Barcode == "" {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("missing barcode"))
			return
		}
		if req.Quantity < 1 {
			req.Quantity = 1
		}

		_, err = s.engine.addItem(c, req.Barcode, req.Quantity)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		s.writeView(c, w, http.StatusCreated)
	}
}

func (s *webService) updateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := updateQuantityRequest{}
		err := myhttp.DecodeForm(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.engine.updateQuantity(c, mux.Vars(r)["lineID"], req.Quantity)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		s.writeView(c, w, http.StatusOK)
	}
}

func (s *webService) removeItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.engine.removeItem(c, mux.Vars(r)["lineID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.writeView(c, w, http.StatusOK)
	}
}

func (s *webService) clearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.engine.clearCart(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Cart emptied"})
	}
}

func (s *webService) startNewCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.engine.startNewCart(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.writeView(c, w, http.StatusCreated)
	}
}

func (s *webService) writeView(c context.Context, w http.ResponseWriter, status int) {
	writer := myhttp.NewWriter(s.logger)

	view, err := s.engine.View(c)
	if err != nil {
		writer.WriteError(c, w, 10, err)
		return
	}
	writer.Write(c, w, status, view)
}
