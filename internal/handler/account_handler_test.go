package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/letsbank/api/internal/ledger"
	"github.com/letsbank/api/internal/middleware"
	"github.com/letsbank/api/internal/models"
)

// ---- mock implementations ----

type mockAccounts struct {
	accountFn func(ctx context.Context, email string) (*models.User, error)
	balanceFn func(ctx context.Context, email string) (float64, error)
	txsFn     func(ctx context.Context, email string) ([]models.Transaction, error)
}

func (m *mockAccounts) GetAccount(ctx context.Context, email string) (*models.User, error) {
	if m.accountFn != nil {
		return m.accountFn(ctx, email)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAccounts) GetBalance(ctx context.Context, email string) (float64, error) {
	if m.balanceFn != nil {
		return m.balanceFn(ctx, email)
	}
	return 0, fmt.Errorf("not configured")
}

func (m *mockAccounts) GetTransactions(ctx context.Context, email string) ([]models.Transaction, error) {
	if m.txsFn != nil {
		return m.txsFn(ctx, email)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newAccountTestRouter(accounts AccountReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAccountHandler(accounts)
	grp := r.Group("/api", middleware.Identity())
	grp.GET("/account", h.GetAccount)
	grp.GET("/balance", h.GetBalance)
	grp.GET("/transactions", h.GetTransactions)
	return r
}

func doGet(router *gin.Engine, url string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestGetAccountEndpoint(t *testing.T) {
	okFn := func(ctx context.Context, email string) (*models.User, error) {
		if email != "a@b.com" {
			return nil, ledger.ErrUserNotFound
		}
		return testUser, nil
	}

	tests := []struct {
		name           string
		url            string
		headers        map[string]string
		accountFn      func(ctx context.Context, email string) (*models.User, error)
		expectedStatus int
	}{
		{
			name:           "success via query parameter",
			url:            "/api/account?email=a@b.com",
			accountFn:      okFn,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "success via header",
			url:            "/api/account",
			headers:        map[string]string{"X-User-Email": "a@b.com"},
			accountFn:      okFn,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "header wins over query parameter",
			url:            "/api/account?email=ghost@b.com",
			headers:        map[string]string{"X-User-Email": "a@b.com"},
			accountFn:      okFn,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unauthenticated without identity",
			url:            "/api/account",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not found on both backends",
			url:            "/api/account?email=ghost@b.com",
			accountFn:      okFn,
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockAccounts{accountFn: tt.accountFn})
			w := doGet(router, tt.url, tt.headers)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK && strings.Contains(w.Body.String(), "password") {
				t.Errorf("account response leaks the password field: %s", w.Body.String())
			}
		})
	}
}

func TestGetAccountBearerFallback(t *testing.T) {
	// Unverified token with payload {"email":"a@b.com"}; signature is junk
	// and that must not matter.
	token := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJlbWFpbCI6ImFAYi5jb20ifQ." +
		"aW52YWxpZC1zaWduYXR1cmU"

	router := newAccountTestRouter(&mockAccounts{
		accountFn: func(ctx context.Context, email string) (*models.User, error) {
			if email != "a@b.com" {
				return nil, ledger.ErrUserNotFound
			}
			return testUser, nil
		},
	})
	w := doGet(router, "/api/account", map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 via bearer claim, got %d; body: %s", w.Code, w.Body.String())
	}
}

func TestGetBalanceEndpoint(t *testing.T) {
	router := newAccountTestRouter(&mockAccounts{
		balanceFn: func(ctx context.Context, email string) (float64, error) {
			return 50100, nil
		},
	})

	w := doGet(router, "/api/balance?email=a@b.com", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "50100") {
		t.Errorf("expected balance in body, got %s", w.Body.String())
	}

	w = doGet(router, "/api/balance", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without identity, got %d", w.Code)
	}
}

func TestGetTransactionsEndpoint(t *testing.T) {
	now := time.Now().UTC()
	txs := []models.Transaction{
		{ID: "LB2", UserEmail: "a@b.com", Amount: 100, Type: models.TransactionTypeCredit, Description: "Credit", Timestamp: now},
		{ID: "LB1", UserEmail: "a@b.com", Amount: 50000, Type: models.TransactionTypeCredit, Description: "Opening balance", Timestamp: now.Add(-time.Minute)},
	}
	router := newAccountTestRouter(&mockAccounts{
		txsFn: func(ctx context.Context, email string) ([]models.Transaction, error) {
			return txs, nil
		},
	})

	w := doGet(router, "/api/transactions?email=a@b.com", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "transactions") {
		t.Errorf("expected transactions envelope, got %s", body)
	}
	if strings.Index(body, "LB2") > strings.Index(body, "LB1") {
		t.Errorf("expected newest transaction serialised first: %s", body)
	}
}

func TestGetTransactionsEmptyList(t *testing.T) {
	router := newAccountTestRouter(&mockAccounts{
		txsFn: func(ctx context.Context, email string) ([]models.Transaction, error) {
			return nil, nil
		},
	})
	w := doGet(router, "/api/transactions?email=ghost@b.com", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "[]") {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
}
