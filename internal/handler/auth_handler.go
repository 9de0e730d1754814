package handler

import (
	"net/http"
	"strings"

	"github.com/chorok-lab/carbon-exchange/internal/identity"
	"github.com/chorok-lab/carbon-exchange/internal/model"
	"github.com/chorok-lab/carbon-exchange/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	provider identity.Provider
	profiles service.ProfileService
}

func NewAuthHandler(provider identity.Provider, profiles service.ProfileService) *AuthHandler {
	return &AuthHandler{provider: provider, profiles: profiles}
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_error", "email is required"))
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_error", "password must be at least 6 characters"))
	}
	role := model.Role(req.Role)
	if !role.Valid() {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_error", "role must be buyer or seller"))
	}
	// must reject before SignUp: a provider account with no profile
	// would leave the email unusable
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_error", "name is required"))
	}

	uid, err := h.provider.SignUp(c.Request().Context(), req.Email, req.Password, req.Name, role)
	if err != nil {
		return writeErr(c, err)
	}
	p, err := h.profiles.Register(c.Request().Context(), uid, req.Email, req.Name, role)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, toProfileResponse(p))
}

func (h *AuthHandler) Signin(c echo.Context) error {
	var req SigninRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	token, err := h.provider.SignIn(c.Request().Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, SigninResponse{Token: token})
}

func (h *AuthHandler) Signout(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	if err := h.provider.SignOut(c.Request().Context(), uid); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
