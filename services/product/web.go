package product

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/selfcheckout/lib/mycontext"
	"github.com/MarcGrol/selfcheckout/lib/myhttp"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
)

type webService struct {
	logger  mylog.Logger
	service *Service
}

func NewWebService(service *Service) *webService {
	return &webService{
		logger:  mylog.New("product"),
		service: service,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/products", s.listProducts()).Methods("GET")
	router.HandleFunc("/api/products/random", s.randomProduct()).Methods("GET")
	router.HandleFunc("/api/products/donations", s.donationProducts()).Methods("GET")
	router.HandleFunc("/api/products/showcase", s.showcase()).Methods("GET")
	router.HandleFunc("/api/barcodes/{code}.png", s.barcodeLabel()).Methods("GET")

	return nil
}

func (s *webService) listProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		products, err := s.service.ListProducts(c)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}
		writer.Write(c, w, http.StatusOK, products)
	}
}

func (s *webService) randomProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		product, err := s.service.RandomProduct(c)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}
		writer.Write(c, w, http.StatusOK, product)
	}
}

func (s *webService) donationProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		products, err := s.service.DonationProducts(c)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}
		writer.Write(c, w, http.StatusOK, products)
	}
}

func (s *webService) showcase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		showcase, err := s.service.Showcase(c)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}
		writer.Write(c, w, http.StatusOK, showcase)
	}
}

func (s *webService) barcodeLabel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		buf := bytes.Buffer{}
		err := RenderLabel(&buf, mux.Vars(r)["code"])
		if err != nil {
			myhttp.NewWriter(s.logger).WriteError(c, w, 1, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}
