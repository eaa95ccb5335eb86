package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perpuskita/library-portal/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())
}

func TestClient_SetsJSONContentTypeAndSessionCookie(t *testing.T) {
	var gotContentType, gotCookie string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if c, err := r.Cookie("session"); err == nil {
			gotCookie = c.Value
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	ctx := WithSession(context.Background(), &http.Cookie{Name: "session", Value: "abc123"})
	_, _, err := NewBooks(client).List(ctx, BookListParams{})
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "abc123", gotCookie)
}

func TestClient_BuildsQueryFromParams(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	_, _, err := NewBooks(client).List(context.Background(), BookListParams{
		Search:        "tolkien",
		AvailableOnly: true,
		Page:          2,
		Limit:         20,
	})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "q=tolkien")
	assert.Contains(t, gotQuery, "available=true")
	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "limit=20")
}

func TestClient_DecodesDataAndPagination(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": "b1", "title": "The Hobbit", "availableQuantity": 2, "quantity": 3},
			},
			"pagination": map[string]any{"total": 41, "totalPages": 3},
		})
	})

	books, pagination, err := NewBooks(client).List(context.Background(), BookListParams{})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Hobbit", books[0].Title)
	assert.Equal(t, 2, books[0].AvailableQuantity)
	require.NotNil(t, pagination)
	assert.Equal(t, 41, pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)
}

func TestClient_NormalisesUserEnvelope(t *testing.T) {
	// Profile endpoints put the payload under "user" instead of "data".
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]any{"id": "u1", "name": "Sari", "role": "USER"},
		})
	})

	user, err := NewUsers(client).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sari", user.Name)
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestClient_NotFoundCarriesBackendMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Book not found",
		})
	})

	_, err := NewBooks(client).Get(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Book not found", apiErr.Error())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_PaymentRequiredIsDistinguished(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Commitment fee required",
			"paymentDetails": map[string]any{
				"amount":   50000,
				"currency": "IDR",
				"orderId":  "ORDER-1",
			},
		})
	})

	_, err := NewLoans(client).Create(context.Background(), LoanInput{UserID: "u1", BookID: "b1"})
	require.Error(t, err)

	// The payment-required condition is a first-class branch, not a
	// generic failure.
	require.ErrorIs(t, err, domain.ErrPaymentRequired)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.NotNil(t, apiErr.PaymentDetails)
	assert.Equal(t, float64(50000), apiErr.PaymentDetails.Amount)
	assert.Equal(t, "IDR", apiErr.PaymentDetails.Currency)
}

func TestClient_NetworkFailureWrapsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	client := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())

	_, err := NewBooks(client).Get(context.Background(), "b1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_LoginRelaysSetCookie(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "sari@example.com", creds.Email)

		http.SetCookie(w, &http.Cookie{Name: "session", Value: "fresh-session", HttpOnly: true})
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]any{"id": "u1", "name": "Sari", "role": "USER"},
		})
	})

	user, cookies, err := NewAuth(client).Login(context.Background(), Credentials{
		Email:    "sari@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "fresh-session", cookies[0].Value)
}

func TestClient_PaymentTokenFromEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "snap-token-1",
			"data":    map[string]any{"amount": 100000, "orderId": "ORDER-9"},
		})
	})

	ctx := WithIdempotencyKey(context.Background(), "idem-1")
	token, details, err := NewPayments(client).CreateMembership(ctx, MembershipCheckout{MembershipType: "PREMIUM"})
	require.NoError(t, err)
	assert.Equal(t, "snap-token-1", token.Token)
	assert.Equal(t, float64(100000), details.Amount)
}

func TestClient_GoogleLoginIsARedirectURL(t *testing.T) {
	client := NewClient(Config{BaseURL: "https://api.library.example"}, zerolog.Nop())
	assert.Equal(t, "https://api.library.example/api/auth/google", NewAuth(client).GoogleLoginURL())
}

func TestError_UnknownStatusMatchesNothing(t *testing.T) {
	err := &Error{Status: http.StatusInternalServerError, Message: "boom"}
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, errors.Is(err, domain.ErrPaymentRequired))
}

func TestMetricRoute(t *testing.T) {
	cases := map[string]string{
		"/api/books":          "/api/books",
		"/api/books/123":      "/api/books",
		"/api/rooms/bookings": "/api/rooms",
		"/api/auth/login":     "/api/auth",
	}
	for in, want := range cases {
		assert.Equal(t, want, metricRoute(in), "path %s", in)
	}
}
