package paymentgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	gatewaytypes "github.com/alx-travel/travelbook/internal/core/datamodel/paymentgateway"
)

// Client talks to the Chapa transaction API. All calls carry the
// secret key as a bearer token and honour the configured timeout via
// request contexts.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	timeout    time.Duration
	logger     *slog.Logger
}

type Config struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    config.BaseURL,
		secretKey:  config.SecretKey,
		timeout:    timeout,
		logger:     logger,
	}
}

// InitializeTransaction registers a checkout with the gateway and
// returns the gateway reference plus the hosted checkout URL.
func (c *Client) InitializeTransaction(ctx context.Context, req *gatewaytypes.InitializeRequest) (*gatewaytypes.InitializeResponse, error) {
	if err := req.Validate(); err != nil {
		c.logger.Error("initialize request validation failed", "error", err, "tx_ref", req.TxRef)
		return nil, fmt.Errorf("validation error: %w", err)
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/transaction/initialize", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("request creation error: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Info("initializing gateway transaction",
		"url", url,
		"tx_ref", req.TxRef,
		"amount", req.Amount,
		"currency", req.Currency)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("gateway initialize request failed", "error", err, "tx_ref", req.TxRef)
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("response read error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("gateway initialize returned error",
			"status", resp.StatusCode,
			"response", string(respBody),
			"tx_ref", req.TxRef)
		return nil, fmt.Errorf("gateway error: status %d, response: %s", resp.StatusCode, string(respBody))
	}

	var initResp gatewaytypes.InitializeResponse
	if err := json.Unmarshal(respBody, &initResp); err != nil {
		c.logger.Error("failed to unmarshal initialize response", "error", err, "response", string(respBody))
		return nil, fmt.Errorf("response unmarshal error: %w", err)
	}

	c.logger.Info("gateway transaction initialized",
		"tx_ref", req.TxRef,
		"reference", initResp.Data.Reference)

	return &initResp, nil
}

// VerifyTransaction asks the gateway for the settled status of a
// previously initialized transaction.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*gatewaytypes.VerifyResponse, error) {
	if reference == "" {
		return nil, fmt.Errorf("validation error: reference is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, reference)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation error: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	c.logger.Info("verifying gateway transaction", "url", url, "reference", reference)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("gateway verify request failed", "error", err, "reference", reference)
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("response read error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("gateway verify returned error",
			"status", resp.StatusCode,
			"response", string(respBody),
			"reference", reference)
		return nil, fmt.Errorf("gateway error: status %d, response: %s", resp.StatusCode, string(respBody))
	}

	var verifyResp gatewaytypes.VerifyResponse
	if err := json.Unmarshal(respBody, &verifyResp); err != nil {
		c.logger.Error("failed to unmarshal verify response", "error", err, "response", string(respBody))
		return nil, fmt.Errorf("response unmarshal error: %w", err)
	}

	c.logger.Info("gateway transaction verified",
		"reference", reference,
		"status", verifyResp.Data.Status,
		"transaction_id", verifyResp.Data.ID)

	return &verifyResp, nil
}
