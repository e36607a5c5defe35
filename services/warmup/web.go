package warmup

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/selfcheckout/lib/mycontext"
	"github.com/MarcGrol/selfcheckout/lib/myhttp"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

// CartLoader resolves the session and loads the cart, so the first scan does not pay for it.
type CartLoader interface {
	View(c context.Context) (shopmodel.CartView, error)
}

type webService struct {
	logger mylog.Logger
	carts  CartLoader
}

func NewService(carts CartLoader) *webService {
	return &webService{
		logger: mylog.New("warmup"),
		carts:  carts,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")

	return nil
}

func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		_, err := s.carts.View(c)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
