package handler

import (
	"net/http"
	"time"

	"github.com/chorok-lab/carbon-exchange/internal/service"
	"github.com/labstack/echo/v4"
)

type PurchaseHandler struct {
	svc      service.PurchaseService
	profiles service.ProfileService
}

func NewPurchaseHandler(svc service.PurchaseService, profiles service.ProfileService) *PurchaseHandler {
	return &PurchaseHandler{svc: svc, profiles: profiles}
}

type TransactionResponse struct {
	ID               string `json:"id"`
	ListingID        string `json:"listingId"`
	BuyerID          string `json:"buyerId"`
	SellerID         string `json:"sellerId"`
	CreditType       string `json:"creditType,omitempty"`
	Quantity         int64  `json:"quantity"`
	UnitPrice        int64  `json:"unitPrice"`
	TotalAmount      int64  `json:"totalAmount"`
	Side             string `json:"side,omitempty"`
	CounterpartyName string `json:"counterpartyName,omitempty"`
	CreatedAt        string `json:"createdAt"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

func (h *PurchaseHandler) Purchase(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	principal, err := h.profiles.Get(c.Request().Context(), uid)
	if err != nil {
		return writeErr(c, err)
	}
	t, err := h.svc.Purchase(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, TransactionResponse{
		ID:          t.ID,
		ListingID:   t.ListingID,
		BuyerID:     t.BuyerID,
		SellerID:    t.SellerID,
		Quantity:    t.Quantity,
		UnitPrice:   t.UnitPrice,
		TotalAmount: t.TotalAmount,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	})
}

func (h *PurchaseHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	principal, err := h.profiles.Get(c.Request().Context(), uid)
	if err != nil {
		return writeErr(c, err)
	}
	list, err := h.svc.ListTransactions(c.Request().Context(), principal)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch transactions"))
	}
	resp := TransactionListResponse{Transactions: make([]TransactionResponse, 0, len(list))}
	for _, row := range list {
		t := row.Transaction
		resp.Transactions = append(resp.Transactions, TransactionResponse{
			ID:               t.ID,
			ListingID:        t.ListingID,
			BuyerID:          t.BuyerID,
			SellerID:         t.SellerID,
			CreditType:       string(row.CreditType),
			Quantity:         t.Quantity,
			UnitPrice:        t.UnitPrice,
			TotalAmount:      t.TotalAmount,
			Side:             row.Side,
			CounterpartyName: row.CounterpartyName,
			CreatedAt:        t.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}
