package paystack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/korede-dotcom/beautybytasapi/apperr"
)

// Client talks to the Paystack transaction API.
type Client struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		BaseURL:    baseURL,
		SecretKey:  secretKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// LineItem is one (product, quantity) pair inside the initialization
// metadata. The gateway echoes the metadata back on verification, which is
// the only record of "what was ordered" between initialize and settlement.
type LineItem struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	ProductTotal float64 `json:"product_total"`
	CustomerName string  `json:"customer_name"`
}

type DeliveryDetails struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

type MetadataProducts struct {
	ProductDescriptions []LineItem      `json:"productDescriptions"`
	DeliveryDetails     DeliveryDetails `json:"deliveryDetails"`
}

type Metadata struct {
	UserID    string           `json:"userId"`
	AddressID string           `json:"addressId"`
	Products  MetadataProducts `json:"products"`
}

type InitializeRequest struct {
	Email       string   `json:"email"`
	Amount      int64    `json:"amount"` // minor units (kobo)
	CallbackURL string   `json:"callback_url"`
	Metadata    Metadata `json:"metadata"`
}

type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type VerifyCustomer struct {
	Email string `json:"email"`
}

type VerifyData struct {
	Status    string         `json:"status"`
	Reference string         `json:"reference"`
	Amount    int64          `json:"amount"`
	Metadata  Metadata       `json:"metadata"`
	Customer  VerifyCustomer `json:"customer"`
}

// envelope is Paystack's outer response shape.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InitializeTransaction requests a hosted checkout URL for the given amount
// and metadata.
func (c *Client) InitializeTransaction(req InitializeRequest) (*InitializeData, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode initialize request: %w", err)
	}

	data, err := c.do(http.MethodPost, "/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var init InitializeData
	if err := json.Unmarshal(data, &init); err != nil {
		return nil, &apperr.GatewayError{Err: fmt.Errorf("failed to parse initialize response: %w", err)}
	}
	if init.AuthorizationURL == "" {
		return nil, &apperr.GatewayError{Err: fmt.Errorf("gateway returned empty authorization url")}
	}
	return &init, nil
}

// VerifyTransaction re-checks a transaction's status by reference. Webhook
// bodies alone are never trusted; settlement always goes through here.
func (c *Client) VerifyTransaction(reference string) (*VerifyData, error) {
	data, err := c.do(http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	var v VerifyData
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &apperr.GatewayError{Err: fmt.Errorf("failed to parse verify response: %w", err)}
	}
	return &v, nil
}

func (c *Client) do(method, path string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, &apperr.GatewayError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &apperr.GatewayError{Err: fmt.Errorf("failed to reach gateway: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperr.GatewayError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read gateway response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperr.GatewayError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &apperr.GatewayError{Err: fmt.Errorf("failed to parse gateway response: %w", err)}
	}
	if !env.Status {
		return nil, &apperr.GatewayError{StatusCode: resp.StatusCode, Body: env.Message}
	}
	return env.Data, nil
}
