package payment_gateway

import (
	"bytes"
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"medika-service/internal/app/config"
	"medika-service/internal/app/contracts"
	"medika-service/internal/pkg/constvars"
	"medika-service/internal/pkg/dto/requests"
	"medika-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	midtransServiceInstance contracts.PaymentGatewayService
	onceMidtransService     sync.Once
)

type midtransService struct {
	snapBaseURL    string
	coreAPIBaseURL string
	serverKey      string
	finishURL      string
	httpClient     *http.Client
	limiter        *rate.Limiter
	Log            *zap.Logger
}

func NewMidtransService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	onceMidtransService.Do(func() {
		rps := internalConfig.Payment.RequestsPerSecond
		if rps <= 0 {
			rps = 10
		}
		midtransServiceInstance = &midtransService{
			snapBaseURL:    internalConfig.Payment.SnapBaseURL,
			coreAPIBaseURL: internalConfig.Payment.CoreAPIBaseURL,
			serverKey:      internalConfig.Payment.ServerKey,
			finishURL:      internalConfig.Payment.FinishRedirectURL,
			httpClient:     &http.Client{Timeout: 30 * time.Second},
			limiter:        rate.NewLimiter(rate.Limit(rps), int(rps)),
			Log:            logger,
		}
	})
	return midtransServiceInstance
}

type snapTransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type snapCustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
}

type snapItemDetail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type snapExpiry struct {
	Unit     string `json:"unit"`
	Duration int    `json:"duration"`
}

type snapCallbacks struct {
	Finish string `json:"finish,omitempty"`
}

type snapCreateRequest struct {
	TransactionDetails snapTransactionDetails `json:"transaction_details"`
	CustomerDetails    snapCustomerDetails    `json:"customer_details"`
	ItemDetails        []snapItemDetail       `json:"item_details"`
	Expiry             *snapExpiry            `json:"expiry,omitempty"`
	Callbacks          *snapCallbacks         `json:"callbacks,omitempty"`
}

type snapCreateResponse struct {
	Token         string   `json:"token"`
	RedirectURL   string   `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages"`
}

func (s *midtransService) CreateTransaction(ctx context.Context, input *contracts.GatewayTransactionInput) (*contracts.GatewayTransactionOutput, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrPaymentGateway(err)
	}

	var expiry *snapExpiry
	if minutes := int(time.Until(input.ExpiryAt).Minutes()); minutes > 0 {
		expiry = &snapExpiry{Unit: "minute", Duration: minutes}
	}

	var callbacks *snapCallbacks
	if s.finishURL != "" {
		callbacks = &snapCallbacks{Finish: s.finishURL}
	}

	payload := snapCreateRequest{
		TransactionDetails: snapTransactionDetails{
			OrderID:     input.OrderID,
			GrossAmount: int64(input.GrossAmount),
		},
		CustomerDetails: snapCustomerDetails{
			FirstName: input.CustomerName,
			Email:     input.CustomerEmail,
		},
		ItemDetails: []snapItemDetail{
			{
				ID:       input.OrderID,
				Name:     input.ItemName,
				Price:    int64(input.GrossAmount),
				Quantity: 1,
			},
		},
		Expiry:    expiry,
		Callbacks: callbacks,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	url := fmt.Sprintf("%s/transactions", s.snapBaseURL)
	respBody, statusCode, err := s.doRequest(ctx, constvars.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	var snapResp snapCreateResponse
	if err := json.Unmarshal(respBody, &snapResp); err != nil {
		return nil, exceptions.ErrPaymentGateway(err)
	}

	if statusCode >= 400 || snapResp.Token == "" {
		err := fmt.Errorf("snap returned status %d: %v", statusCode, snapResp.ErrorMessages)
		s.Log.Error("midtransService.CreateTransaction rejected",
			zap.String(constvars.LoggingOrderIDKey, input.OrderID),
			zap.Int(constvars.LoggingStatusCodeKey, statusCode),
			zap.Error(err),
		)
		return nil, exceptions.ErrPaymentGateway(err)
	}

	return &contracts.GatewayTransactionOutput{
		Token:       snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

func (s *midtransService) GetTransactionStatus(ctx context.Context, orderID string) (*requests.PaymentNotificationRequest, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrPaymentGateway(err)
	}

	url := fmt.Sprintf("%s/%s/status", s.coreAPIBaseURL, orderID)
	respBody, statusCode, err := s.doRequest(ctx, constvars.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if statusCode >= 400 {
		return nil, exceptions.ErrPaymentGateway(fmt.Errorf("status endpoint returned %d", statusCode))
	}

	var status requests.PaymentNotificationRequest
	if err := json.Unmarshal(respBody, &status); err != nil {
		return nil, exceptions.ErrPaymentGateway(err)
	}
	return &status, nil
}

func (s *midtransService) CancelTransaction(ctx context.Context, orderID string) error {
	return s.postAction(ctx, orderID, "cancel")
}

func (s *midtransService) ExpireTransaction(ctx context.Context, orderID string) error {
	return s.postAction(ctx, orderID, "expire")
}

func (s *midtransService) postAction(ctx context.Context, orderID, action string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return exceptions.ErrPaymentGateway(err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.coreAPIBaseURL, orderID, action)
	_, statusCode, err := s.doRequest(ctx, constvars.MethodPost, url, nil)
	if err != nil {
		return err
	}
	// 404 and 412 mean the transaction is already gone or final at the
	// gateway; both are fine for a best-effort cancel/expire.
	if statusCode >= 400 && statusCode != 404 && statusCode != 412 {
		return exceptions.ErrPaymentGateway(fmt.Errorf("%s endpoint returned %d", action, statusCode))
	}
	return nil
}

// VerifySignature checks the gateway's SHA-512 notification signature:
// sha512(order_id + status_code + gross_amount + server_key) in hex.
func (s *midtransService) VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + s.serverKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signatureKey)) == 1
}

func (s *midtransService) doRequest(ctx context.Context, method, url string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, exceptions.ErrPaymentGateway(err)
	}

	auth := base64.StdEncoding.EncodeToString([]byte(s.serverKey + ":"))
	req.Header.Set(constvars.HeaderAuthorization, "Basic "+auth)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set("Accept", constvars.MIMEApplicationJSON)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, exceptions.ErrPaymentGateway(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, exceptions.ErrPaymentGateway(err)
	}
	return respBody, resp.StatusCode, nil
}
