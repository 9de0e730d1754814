package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chorok-lab/carbon-exchange/internal/identity"
	"github.com/chorok-lab/carbon-exchange/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Deps{
		Provider:    identity.NewMemoryProvider(),
		ListingRepo: repository.NewMemoryListingRepository(),
		TxRepo:      repository.NewMemoryTransactionRepository(),
		ProfileRepo: repository.NewMemoryProfileRepository(),
	})
}

func doJSON(t *testing.T, s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func signup(t *testing.T, s *Server, email, role string) {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/auth/signup", "",
		`{"email":"`+email+`","password":"secret1","name":"`+role+` user","role":"`+role+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func signin(t *testing.T, s *Server, email string) string {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/auth/signin", "",
		`{"email":"`+email+`","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	decode(t, rec, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestMarketplaceFlow(t *testing.T) {
	s := newTestServer(t)

	signup(t, s, "seller@test.com", "seller")
	signup(t, s, "buyer@test.com", "buyer")
	sellerTok := signin(t, s, "seller@test.com")
	buyerTok := signin(t, s, "buyer@test.com")

	// seller lists KOC 100 x 15000
	rec := doJSON(t, s, http.MethodPost, "/api/listings", sellerTok,
		`{"creditType":"KOC","quantity":100,"unitPrice":15000}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var listing struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		TotalAmount int64  `json:"totalAmount"`
	}
	decode(t, rec, &listing)
	assert.Equal(t, "available", listing.Status)
	assert.Equal(t, int64(1500000), listing.TotalAmount)

	// public marketplace shows it with the seller name, no auth needed
	rec = doJSON(t, s, http.MethodGet, "/api/listings", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var open struct {
		Listings []struct {
			ID         string `json:"id"`
			SellerName string `json:"sellerName"`
		} `json:"listings"`
	}
	decode(t, rec, &open)
	require.Len(t, open.Listings, 1)
	assert.Equal(t, listing.ID, open.Listings[0].ID)
	assert.Equal(t, "seller user", open.Listings[0].SellerName)

	// buyer purchases it
	rec = doJSON(t, s, http.MethodPost, "/api/listings/"+listing.ID+"/purchase", buyerTok, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tx struct {
		Quantity    int64 `json:"quantity"`
		UnitPrice   int64 `json:"unitPrice"`
		TotalAmount int64 `json:"totalAmount"`
	}
	decode(t, rec, &tx)
	assert.Equal(t, int64(100), tx.Quantity)
	assert.Equal(t, int64(15000), tx.UnitPrice)
	assert.Equal(t, int64(1500000), tx.TotalAmount)

	// the listing left the marketplace
	rec = doJSON(t, s, http.MethodGet, "/api/listings", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &open)
	assert.Empty(t, open.Listings)

	// a second purchase conflicts
	rec = doJSON(t, s, http.MethodPost, "/api/listings/"+listing.ID+"/purchase", buyerTok, "")
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// both parties see the transaction
	for _, tok := range []string{buyerTok, sellerTok} {
		rec = doJSON(t, s, http.MethodGet, "/api/me/transactions", tok, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var hist struct {
			Transactions []struct {
				CreditType  string `json:"creditType"`
				TotalAmount int64  `json:"totalAmount"`
			} `json:"transactions"`
		}
		decode(t, rec, &hist)
		require.Len(t, hist.Transactions, 1)
		assert.Equal(t, "KOC", hist.Transactions[0].CreditType)
		assert.Equal(t, int64(1500000), hist.Transactions[0].TotalAmount)
	}
}

func TestMarketplaceRejections(t *testing.T) {
	s := newTestServer(t)
	signup(t, s, "seller@test.com", "seller")
	signup(t, s, "buyer@test.com", "buyer")
	sellerTok := signin(t, s, "seller@test.com")
	buyerTok := signin(t, s, "buyer@test.com")

	// zero quantity never creates a listing
	rec := doJSON(t, s, http.MethodPost, "/api/listings", sellerTok,
		`{"creditType":"KOC","quantity":0,"unitPrice":15000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, rec, &errResp)
	assert.Equal(t, "validation_error", errResp.Error.Code)

	// buyers cannot list
	rec = doJSON(t, s, http.MethodPost, "/api/listings", buyerTok,
		`{"creditType":"KOC","quantity":10,"unitPrice":100}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// sellers cannot retire another seller's listing
	signup(t, s, "seller2@test.com", "seller")
	seller2Tok := signin(t, s, "seller2@test.com")
	rec = doJSON(t, s, http.MethodPost, "/api/listings", sellerTok,
		`{"creditType":"KCU","quantity":50,"unitPrice":18000}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var listing struct {
		ID string `json:"id"`
	}
	decode(t, rec, &listing)

	rec = doJSON(t, s, http.MethodDelete, "/api/listings/"+listing.ID, seller2Tok, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/listings", "", "")
	var open struct {
		Listings []struct {
			Status string `json:"status"`
		} `json:"listings"`
	}
	decode(t, rec, &open)
	require.Len(t, open.Listings, 1, "failed retire leaves the listing available")

	// protected routes without a token
	rec = doJSON(t, s, http.MethodGet, "/api/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// unknown listing id
	rec = doJSON(t, s, http.MethodPost, "/api/listings/nope/purchase", buyerTok, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// wrong password
	rec = doJSON(t, s, http.MethodPost, "/api/auth/signin", "",
		`{"email":"buyer@test.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// duplicate signup
	rec = doJSON(t, s, http.MethodPost, "/api/auth/signup", "",
		`{"email":"buyer@test.com","password":"secret1","name":"dup","role":"buyer"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProfileRoutes(t *testing.T) {
	s := newTestServer(t)
	signup(t, s, "buyer@test.com", "buyer")
	tok := signin(t, s, "buyer@test.com")

	rec := doJSON(t, s, http.MethodGet, "/api/me", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Role string `json:"role"`
		Name string `json:"name"`
	}
	decode(t, rec, &me)
	assert.Equal(t, "buyer", me.Role)

	rec = doJSON(t, s, http.MethodPut, "/api/me", tok,
		`{"name":"김민수","phone":"010-1234-5678","company":"ABC Company"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Name    string  `json:"name"`
		Phone   *string `json:"phone"`
		Company *string `json:"company"`
		Role    string  `json:"role"`
	}
	decode(t, rec, &updated)
	assert.Equal(t, "김민수", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "010-1234-5678", *updated.Phone)
	assert.Equal(t, "buyer", updated.Role, "updates never touch the role")

	rec = doJSON(t, s, http.MethodPut, "/api/me", tok, `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// sign-out invalidates the token
	rec = doJSON(t, s, http.MethodPost, "/api/auth/signout", tok, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, s, http.MethodGet, "/api/me", tok, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignupRejectionLeavesEmailFree(t *testing.T) {
	s := newTestServer(t)

	// a blank name fails before any identity account exists
	rec := doJSON(t, s, http.MethodPost, "/api/auth/signup", "",
		`{"email":"retry@test.com","password":"secret1","name":"   ","role":"buyer"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	var errResp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, rec, &errResp)
	assert.Equal(t, "validation_error", errResp.Error.Code)

	// so the same email signs up cleanly on the retry
	rec = doJSON(t, s, http.MethodPost, "/api/auth/signup", "",
		`{"email":"retry@test.com","password":"secret1","name":"김민수","role":"buyer"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}
