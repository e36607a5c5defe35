package checkout

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/selfcheckout/services/shopmodel"
)

func TestCheckoutWeb(t *testing.T) {

	t.Run("Payment methods", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(t, ctrl)
		router := mux.NewRouter()
		NewWebService(tc.sut, tc.journal).RegisterEndpoints(tc.c, router)

		// when
		request, _ := http.NewRequest(http.MethodGet, "/api/payment-methods", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `[{"id":"qris","label":"QRIS"}]`, response.Body.String())
	})

	t.Run("Create QRIS transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(t, ctrl)
		router := mux.NewRouter()
		NewWebService(tc.sut, tc.journal).RegisterEndpoints(tc.c, router)
		tc.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		// given
		tc.gateway.EXPECT().CreateTransaction(gomock.Any(), "qris").Return(transaction(shopmodel.TransactionStatusPending), nil)

		// when
		request := formRequest(http.MethodPost, "/api/checkout/transaction", url.Values{"payment_method": {"qris"}})
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusCreated, response.Code)
		body := struct {
			Transaction map[string]any `json:"transaction"`
		}{}
		json.Unmarshal(response.Body.Bytes(), &body)
		assert.Equal(t, "PENDING", body.Transaction["status"])
		assert.Equal(t, "https://qris.example/order-1.png", body.Transaction["qris_link"])
	})

	t.Run("Unsupported payment method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(t, ctrl)
		router := mux.NewRouter()
		NewWebService(tc.sut, tc.journal).RegisterEndpoints(tc.c, router)

		// when
		request := formRequest(http.MethodPost, "/api/checkout/transaction", url.Values{"payment_method": {"cash"}})
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("Refresh without transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(t, ctrl)
		router := mux.NewRouter()
		NewWebService(tc.sut, tc.journal).RegisterEndpoints(tc.c, router)

		// when
		request, _ := http.NewRequest(http.MethodPost, "/api/checkout/transaction/refresh", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("Invoice needs a valid email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		tc := setup(t, ctrl)
		router := mux.NewRouter()
		NewWebService(tc.sut, tc.journal).RegisterEndpoints(tc.c, router)

		// when
		request := formRequest(http.MethodPost, "/api/checkout/transaction/invoice", url.Values{"email": {"not-an-email"}})
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})
}

func formRequest(method string, path string, values url.Values) *http.Request {
	request, _ := http.NewRequest(method, path, strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}
