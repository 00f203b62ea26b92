package payment_gateway

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medika-service/internal/app/contracts"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newTestService(baseURL string) *midtransService {
	return &midtransService{
		snapBaseURL:    baseURL,
		coreAPIBaseURL: baseURL,
		serverKey:      "SB-Mid-server-testkey",
		httpClient:     &http.Client{Timeout: 5 * time.Second},
		limiter:        rate.NewLimiter(rate.Inf, 1),
		Log:            zap.NewNop(),
	}
}

func TestVerifySignature(t *testing.T) {
	service := newTestService("")

	orderID := "MEDIKA-a1b2c3d4-1734300000000"
	statusCode := "200"
	grossAmount := "165000.00"

	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + "SB-Mid-server-testkey"))
	signature := hex.EncodeToString(sum[:])

	t.Run("Valid Signature", func(t *testing.T) {
		assert.True(t, service.VerifySignature(orderID, statusCode, grossAmount, signature))
	})

	t.Run("Tampered Amount", func(t *testing.T) {
		assert.False(t, service.VerifySignature(orderID, statusCode, "1.00", signature))
	})

	t.Run("Wrong Signature", func(t *testing.T) {
		assert.False(t, service.VerifySignature(orderID, statusCode, grossAmount, "deadbeef"))
	})

	t.Run("Empty Signature", func(t *testing.T) {
		assert.False(t, service.VerifySignature(orderID, statusCode, grossAmount, ""))
	})
}

func TestCreateTransaction(t *testing.T) {
	t.Run("Successful Creation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transactions", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Contains(t, r.Header.Get("Authorization"), "Basic ", "server key should be sent as basic auth")

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"token":"snap-token-123","redirect_url":"https://app.example.com/snap/v2/vtweb/snap-token-123"}`))
		}))
		defer server.Close()

		service := newTestService(server.URL)
		output, err := service.CreateTransaction(context.Background(), &contracts.GatewayTransactionInput{
			OrderID:     "MEDIKA-a1b2c3d4-1734300000000",
			GrossAmount: 165000,
			ItemName:    "Consultation with dr. Example",
			ExpiryAt:    time.Now().Add(time.Hour),
		})

		assert.NoError(t, err)
		assert.Equal(t, "snap-token-123", output.Token)
		assert.Contains(t, output.RedirectURL, "snap-token-123")
	})

	t.Run("Gateway Rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error_messages":["Access denied due to unauthorized transaction"]}`))
		}))
		defer server.Close()

		service := newTestService(server.URL)
		_, err := service.CreateTransaction(context.Background(), &contracts.GatewayTransactionInput{
			OrderID:     "MEDIKA-a1b2c3d4-1734300000000",
			GrossAmount: 165000,
			ExpiryAt:    time.Now().Add(time.Hour),
		})

		assert.Error(t, err)
	})
}

func TestGetTransactionStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/MEDIKA-a1b2c3d4-1734300000000/status", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order_id":"MEDIKA-a1b2c3d4-1734300000000","transaction_status":"settlement","payment_type":"bank_transfer","status_code":"200","gross_amount":"165000.00"}`))
	}))
	defer server.Close()

	service := newTestService(server.URL)
	status, err := service.GetTransactionStatus(context.Background(), "MEDIKA-a1b2c3d4-1734300000000")

	assert.NoError(t, err)
	assert.Equal(t, "settlement", status.TransactionStatus)
	assert.Equal(t, "bank_transfer", status.PaymentType)
}

func TestCancelTransaction(t *testing.T) {
	t.Run("Missing Transaction Is Tolerated", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		service := newTestService(server.URL)
		err := service.CancelTransaction(context.Background(), "MEDIKA-gone-1734300000000")

		assert.NoError(t, err, "cancel is best effort; a missing transaction is not an error")
	})

	t.Run("Server Error Is Reported", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		service := newTestService(server.URL)
		err := service.CancelTransaction(context.Background(), "MEDIKA-a1b2c3d4-1734300000000")

		assert.Error(t, err)
	})
}
