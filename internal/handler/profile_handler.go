package handler

import (
	"net/http"
	"time"

	"github.com/chorok-lab/carbon-exchange/internal/model"
	"github.com/chorok-lab/carbon-exchange/internal/service"
	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type ProfileResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Name      string  `json:"name"`
	Company   *string `json:"company,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

func toProfileResponse(p *model.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		Role:      string(p.Role),
		Name:      p.Name,
		Company:   p.Company,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

type UpdateProfileRequest struct {
	Name    string  `json:"name"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
}

func (h *ProfileHandler) Me(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	p, err := h.svc.Get(c.Request().Context(), uid)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, toProfileResponse(p))
}

func (h *ProfileHandler) UpdateMe(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p, err := h.svc.Get(c.Request().Context(), uid)
	if err != nil {
		return writeErr(c, err)
	}
	updated, err := h.svc.Update(c.Request().Context(), p, service.ProfileUpdates{
		Name:    req.Name,
		Phone:   req.Phone,
		Company: req.Company,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, toProfileResponse(updated))
}
