package paystack

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Client is a thin wrapper over the Paystack transaction API.
type Client struct {
	http *resty.Client
}

func New(baseURL, secretKey string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(secretKey).
		SetHeader("Content-Type", "application/json")

	return &Client{http: client}
}

// Metadata is attached on initialize and echoed back on verify.
type Metadata struct {
	UserID   uint `json:"userId"`
	CourseID uint `json:"courseId"`
}

// Transaction is the gateway's view of a payment attempt.
type Transaction struct {
	Status           string   `json:"status"` // success, abandoned, failed, ...
	Reference        string   `json:"reference"`
	AuthorizationURL string   `json:"authorization_url"`
	Amount           int64    `json:"amount"` // minor units
	Metadata         Metadata `json:"metadata"`
}

type apiResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    Transaction `json:"data"`
}

type initializeRequest struct {
	Email    string   `json:"email"`
	Amount   int64    `json:"amount"` // minor units
	Metadata Metadata `json:"metadata"`
}

// InitializeTransaction creates a transaction and returns the checkout
// reference and redirect URL.
func (c *Client) InitializeTransaction(email string, amount int64, meta Metadata) (*Transaction, error) {
	var result apiResponse

	resp, err := c.http.R().
		SetBody(initializeRequest{Email: email, Amount: amount, Metadata: meta}).
		SetResult(&result).
		Post("/transaction/initialize")
	if err != nil {
		return nil, err
	}
	if resp.IsError() || !result.Status {
		return nil, fmt.Errorf("paystack initialize failed: %s", result.Message)
	}

	return &result.Data, nil
}

// VerifyTransaction asks the gateway for the current status of a
// transaction reference.
func (c *Client) VerifyTransaction(reference string) (*Transaction, error) {
	var result apiResponse

	resp, err := c.http.R().
		SetResult(&result).
		Get("/transaction/verify/" + reference)
	if err != nil {
		return nil, err
	}
	if resp.IsError() || !result.Status {
		return nil, fmt.Errorf("paystack verify failed: %s", result.Message)
	}

	return &result.Data, nil
}
