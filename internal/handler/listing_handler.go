package handler

import (
	"net/http"
	"time"

	"github.com/chorok-lab/carbon-exchange/internal/model"
	"github.com/chorok-lab/carbon-exchange/internal/service"
	"github.com/labstack/echo/v4"
)

type ListingHandler struct {
	svc      service.ListingService
	profiles service.ProfileService
}

func NewListingHandler(svc service.ListingService, profiles service.ProfileService) *ListingHandler {
	return &ListingHandler{svc: svc, profiles: profiles}
}

type ListingResponse struct {
	ID            string  `json:"id"`
	SellerID      string  `json:"sellerId"`
	SellerName    string  `json:"sellerName,omitempty"`
	SellerCompany *string `json:"sellerCompany,omitempty"`
	CreditType    string  `json:"creditType"`
	Quantity      int64   `json:"quantity"`
	UnitPrice     int64   `json:"unitPrice"`
	TotalAmount   int64   `json:"totalAmount"`
	Description   *string `json:"description,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

type ListingListResponse struct {
	Listings []ListingResponse `json:"listings"`
}

type CreateListingRequest struct {
	CreditType  string  `json:"creditType"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   int64   `json:"unitPrice"`
	Description *string `json:"description"`
}

func toListingResponse(l *model.Listing) ListingResponse {
	return ListingResponse{
		ID:          l.ID,
		SellerID:    l.SellerID,
		CreditType:  string(l.CreditType),
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		TotalAmount: l.Quantity * l.UnitPrice,
		Description: l.Description,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ListingHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	principal, err := h.profiles.Get(c.Request().Context(), uid)
	if err != nil {
		return writeErr(c, err)
	}
	l, err := h.svc.Create(c.Request().Context(), principal, service.CreateListingInput{
		CreditType:  model.CreditType(req.CreditType),
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Description: req.Description,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, toListingResponse(l))
}

// List is the public marketplace view: available listings only, seller name
// and company attached.
func (h *ListingHandler) List(c echo.Context) error {
	list, err := h.svc.ListAvailable(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch listings"))
	}
	resp := ListingListResponse{Listings: make([]ListingResponse, 0, len(list))}
	for i := range list {
		row := toListingResponse(&list[i].Listing)
		row.SellerName = list[i].SellerName
		row.SellerCompany = list[i].SellerCompany
		resp.Listings = append(resp.Listings, row)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ListingHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	principal, err := h.profiles.Get(c.Request().Context(), uid)
	if err != nil {
		return writeErr(c, err)
	}
	list, err := h.svc.ListMine(c.Request().Context(), principal)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch listings"))
	}
	resp := ListingListResponse{Listings: make([]ListingResponse, 0, len(list))}
	for i := range list {
		resp.Listings = append(resp.Listings, toListingResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ListingHandler) Retire(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	principal, err := h.profiles.Get(c.Request().Context(), uid)
	if err != nil {
		return writeErr(c, err)
	}
	l, err := h.svc.Retire(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, toListingResponse(l))
}
