package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"paydash/internal/models"
)

// GatewayService talks to the remote payments API. Every screen in the
// dashboard is a thin view over it; nothing is cached between calls and no
// call is retried.
type GatewayService struct {
	baseURL string
	client  *http.Client
}

func NewGatewayService(baseURL string) *GatewayService {
	return &GatewayService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ListTransactions fetches one page of transactions with the bearer token of
// the current session. The response envelope is not uniform; unrecognized
// shapes decode to an empty page rather than an error.
func (s *GatewayService) ListTransactions(ctx context.Context, token string, req models.PageRequest) (models.TransactionPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("limit", strconv.Itoa(req.Limit))
	q.Set("sort", req.Sort)
	q.Set("order", req.Order)

	httpReq, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/api/payments/transactions?"+q.Encode(), nil)
	if err != nil {
		return models.TransactionPage{}, err
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return models.TransactionPage{}, fmt.Errorf("failed to fetch transactions: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.TransactionPage{}, fmt.Errorf("failed to read transactions response: %v", err)
	}

	return models.UnmarshalTransactionPage(body), nil
}

// CheckStatus asks the gateway for the current status of one collect request.
// The endpoint is unauthenticated and its response shape is tolerated
// loosely; a missing status comes back as "N/A".
func (s *GatewayService) CheckStatus(ctx context.Context, collectID string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/api/payments/check-status/"+url.PathEscape(collectID), nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to check status for %s: %v", collectID, err)
	}
	defer resp.Body.Close()

	var result struct {
		Updated struct {
			Status string `json:"status"`
		} `json:"updated"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode check-status response: %v", err)
	}

	if result.Updated.Status == "" {
		return "N/A", nil
	}
	return result.Updated.Status, nil
}

type authResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login exchanges credentials for a bearer token. A response without a token
// is a rejection carrying the server's message, or a generic fallback.
func (s *GatewayService) Login(ctx context.Context, email, password string) (string, error) {
	res, err := s.postAuth(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if res.Token == "" {
		if res.Message != "" {
			return "", errors.New(res.Message)
		}
		return "", errors.New("Login failed")
	}
	return res.Token, nil
}

// Register creates an account. The issued token is discarded; the user is
// expected to log in afterwards.
func (s *GatewayService) Register(ctx context.Context, name, email, password string) error {
	res, err := s.postAuth(ctx, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	if res.Token == "" {
		if res.Message != "" {
			return errors.New(res.Message)
		}
		return errors.New("Registration failed")
	}
	return nil
}

func (s *GatewayService) postAuth(ctx context.Context, path string, payload map[string]string) (*authResponse, error) {
	bodyBytes, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+path, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach auth endpoint: %v", err)
	}
	defer resp.Body.Close()

	var res authResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %v", err)
	}
	return &res, nil
}
