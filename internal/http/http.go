// Package for the outbound HTTP client

package http

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

type Client struct {
	*retryablehttp.Client
}

func New() *Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMax = time.Second * 10
	client.Logger = nil
	return &Client{
		Client: client,
	}
}

type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Request Failed.\nStatus: %s. \nBody: %s", e.Status, e.Body)
}

func NewHTTPError(statusCode int, status, body string) error {
	return &HTTPError{
		StatusCode: statusCode,
		Status:     status,
		Body:       body,
	}
}
