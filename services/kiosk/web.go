package kiosk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/selfcheckout/lib/mycontext"
	"github.com/MarcGrol/selfcheckout/lib/myerrors"
	"github.com/MarcGrol/selfcheckout/lib/myhttp"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mynotify"
)

type FrameWriter interface {
	WriteJPEG(w io.Writer) (bool, error)
}

type webService struct {
	logger mylog.Logger
	kiosk  *Kiosk
	frames FrameWriter
	feed   *mynotify.Feed
}

func NewWebService(kiosk *Kiosk, frames FrameWriter, feed *mynotify.Feed) *webService {
	return &webService{
		logger: mylog.New("kiosk"),
		kiosk:  kiosk,
		frames: frames,
		feed:   feed,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/kiosk", s.status()).Methods("GET")
	router.HandleFunc("/api/kiosk/payment", s.openPayment()).Methods("POST")
	router.HandleFunc("/api/kiosk/payment", s.closePayment()).Methods("DELETE")
	router.HandleFunc("/api/scanner/start", s.startScanner()).Methods("POST")
	router.HandleFunc("/api/scanner/stop", s.stopScanner()).Methods("POST")
	router.HandleFunc("/api/scanner/frame.jpg", s.frame()).Methods("GET")
	router.HandleFunc("/api/notifications", s.notifications()).Methods("GET")

	return nil
}

type notificationsRequest struct {
	After int64 `form:"after" validate:"gte=0"`
}

func (s *webService) status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		s.writeStatus(c, w, http.StatusOK)
	}
}

func (s *webService) openPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		err := s.kiosk.OpenPayment(c)
		if err != nil {
			myhttp.NewWriter(s.logger).WriteError(c, w, 1, err)
			return
		}

		s.writeStatus(c, w, http.StatusOK)
	}
}

func (s *webService) closePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		err := s.kiosk.ClosePayment(c)
		if err != nil {
			myhttp.NewWriter(s.logger).WriteError(c, w, 1, err)
			return
		}

		s.writeStatus(c, w, http.StatusOK)
	}
}

func (s *webService) startScanner() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		err := s.kiosk.StartScanner(c)
		if err != nil {
			myhttp.NewWriter(s.logger).WriteError(c, w, 1, err)
			return
		}

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, s.kiosk.scanner.Status())
	}
}

func (s *webService) stopScanner() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		s.kiosk.StopScanner()

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, s.kiosk.scanner.Status())
	}
}

func (s *webService) frame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		buf := bytes.Buffer{}
		found, err := s.frames.WriteJPEG(&buf)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(fmt.Errorf("error encoding frame: %s", err)))
			return
		}
		if !found {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

func (s *webService) notifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		req := notificationsRequest{}
		err := myhttp.DecodeForm(r, &req)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, s.feed.After(req.After))
	}
}

func (s *webService) writeStatus(c context.Context, w http.ResponseWriter, httpStatus int) {
	writer := myhttp.NewWriter(s.logger)

	status, err := s.kiosk.Status(c)
	if err != nil {
		writer.WriteError(c, w, 10, err)
		return
	}
	writer.Write(c, w, httpStatus, status)
}
