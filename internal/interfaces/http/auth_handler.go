package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stockyhq/stocky-api/internal/application/auth"
	"github.com/stockyhq/stocky-api/internal/application/dto"
	"github.com/stockyhq/stocky-api/internal/application/usecase"
	"github.com/stockyhq/stocky-api/internal/domain"
)

const refreshCookieName = "refreshToken"

// AuthHandler maneja registro, login, refresh y logout.
type AuthHandler struct {
	uc                *auth.UseCase
	userUC            *usecase.UserUseCase
	refreshExpMinutes int
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase, userUC *usecase.UserUseCase, refreshExpMinutes int) *AuthHandler {
	return &AuthHandler{uc: uc, userUC: userUC, refreshExpMinutes: refreshExpMinutes}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, email, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	user, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve el token de acceso en el cuerpo y el refresh token
// @Description  como cookie httpOnly.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	resp, refresh, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	h.setRefreshCookie(c, refresh)
	return c.JSON(resp)
}

// Refresh godoc
// @Summary      Renovar token de acceso
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.RefreshResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refresh := c.Cookies(refreshCookieName)
	if refresh == "" {
		return respondError(c, domain.ErrUnauthorized)
	}
	resp, err := h.uc.Refresh(c.Context(), refresh)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Expira la cookie del refresh token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.userUC.GetByID(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, refresh string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    refresh,
		Expires:  time.Now().Add(time.Duration(h.refreshExpMinutes) * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
