package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/milistaderegalos/payouts/internal/config"
	"github.com/milistaderegalos/payouts/internal/domain"
)

// Webpay-style bank transfer API. Response code 0 means approved; negative
// codes are declines, a couple of which the provider documents as
// retryable.

var responseMessages = map[int]string{
	-1: "Transacción rechazada",
	-2: "Transacción debe reintentarse",
	-3: "Error en transacción",
	-4: "Rechazo general",
	-5: "Rechazo - Posible reintentar",
	-6: "Rechazo definitivo",
	-7: "Pago denegado",
	-8: "Transacción cancelada",
}

var retryableCodes = map[int]bool{
	-2: true,
	-5: true,
}

type HTTPClient interface {
	Post(ctx context.Context, url string, headers http.Header, body []byte) (statusCode int, respBody []byte, err error)
}

type Client struct {
	url          string
	commerceCode string
	apiKey       string
	environment  string
	client       HTTPClient
}

func NewClient(cfg *config.Config, client HTTPClient) *Client {
	return &Client{
		url:          cfg.GatewayAddress,
		commerceCode: cfg.GatewayCommerceCode,
		apiKey:       cfg.GatewayAPIKey,
		environment:  cfg.GatewayEnvironment,
		client:       client,
	}
}

type transferPayload struct {
	CommerceCode   string             `json:"commerce_code"`
	SessionID      string             `json:"session_id"`
	Amount         int64              `json:"amount"`
	IdempotencyKey string             `json:"idempotency_key"`
	Destination    domain.BankAccount `json:"destination"`
	Environment    string             `json:"environment"`
}

type transferResponse struct {
	ResponseCode  int    `json:"response_code"`
	TransactionID string `json:"transaction_id"`
	SettledAmount int64  `json:"settled_amount"`
	Message       string `json:"message"`
	Status        string `json:"status"`
}

func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Tbk-Api-Key-Id", c.commerceCode)
	h.Set("Tbk-Api-Key-Secret", c.apiKey)
	return h
}

func (c *Client) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	payload := transferPayload{
		CommerceCode:   c.commerceCode,
		SessionID:      "sess_" + uuid.NewString(),
		Amount:         req.Amount,
		IdempotencyKey: req.IdempotencyKey,
		Destination:    req.Destination,
		Environment:    c.environment,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("can't marshal transfer payload: %w", err)
	}

	statusCode, respBody, err := c.client.Post(ctx, c.url+"/transfers", c.headers(), body)
	if err != nil {
		return nil, &TransientError{Err: err}
	}

	switch {
	case statusCode >= http.StatusInternalServerError || statusCode == http.StatusTooManyRequests:
		return nil, &TransientError{Err: fmt.Errorf("gateway returned status %d", statusCode)}
	case statusCode != http.StatusOK:
		return nil, &RejectedError{Code: statusCode, Message: "unexpected gateway status"}
	}

	var resp transferResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, &TransientError{Err: fmt.Errorf("can't parse gateway response: %w", err)}
	}

	if resp.ResponseCode != 0 {
		return nil, responseError(resp.ResponseCode, resp.Message)
	}

	zap.L().Info("transfer approved",
		zap.String("idempotencyKey", req.IdempotencyKey),
		zap.String("transactionID", resp.TransactionID),
	)
	return &TransferResult{
		TransactionID: resp.TransactionID,
		SettledAmount: resp.SettledAmount,
	}, nil
}

// StatusOf asks the provider what actually happened to a transfer,
// identified by its idempotency key. Reconciliation for payouts stuck in
// processing.
func (c *Client) StatusOf(ctx context.Context, idempotencyKey string) (*TransferStatus, error) {
	payload := map[string]string{
		"commerce_code":   c.commerceCode,
		"idempotency_key": idempotencyKey,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("can't marshal status payload: %w", err)
	}

	statusCode, respBody, err := c.client.Post(ctx, c.url+"/transfers/status", c.headers(), body)
	if err != nil {
		return nil, &TransientError{Err: err}
	}
	if statusCode != http.StatusOK {
		return nil, &TransientError{Err: fmt.Errorf("gateway returned status %d", statusCode)}
	}

	var resp transferResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, &TransientError{Err: fmt.Errorf("can't parse gateway response: %w", err)}
	}

	status := TransferStatus{
		TransactionID: resp.TransactionID,
		Code:          resp.ResponseCode,
		Message:       resp.Message,
	}
	switch resp.Status {
	case "settled":
		status.Status = StatusSettled
	case "rejected":
		status.Status = StatusRejected
	default:
		status.Status = StatusPending
	}
	return &status, nil
}

func responseError(code int, message string) error {
	if message == "" {
		if known, ok := responseMessages[code]; ok {
			message = known
		} else {
			message = "Error desconocido"
		}
	}
	if retryableCodes[code] {
		return &TransientError{Err: &RejectedError{Code: code, Message: message}}
	}
	return &RejectedError{Code: code, Message: message}
}
