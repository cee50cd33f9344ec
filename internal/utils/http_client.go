package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client. Embedding exposes the full resty API
// while leaving room for application-specific behavior on top.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a new HTTPClient with a default-configured
// underlying resty.Client. Each call returns an independent instance
// with its own connection pool and state.
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://api.example.com/brapi/v2/germplasm")
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
