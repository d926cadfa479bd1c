package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/stockyhq/stocky-api/internal/application/dto"
	"github.com/stockyhq/stocky-api/internal/application/ledger"
	"github.com/stockyhq/stocky-api/internal/application/reporting"
)

// MovementHandler maneja el libro de movimientos (protegido). Las escrituras
// pasan por el motor; las lecturas por el lado de consulta.
type MovementHandler struct {
	engine    *ledger.Engine
	reporting *reporting.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *ledger.Engine, reportingUC *reporting.UseCase) *MovementHandler {
	return &MovementHandler{engine: engine, reporting: reportingUC}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Description  entrada suma, salida resta; una salida mayor al stock actual
// @Description  se rechaza sin efectos.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "productId, type, quantity, reason, user"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	movement, err := h.engine.RecordMovement(c.Context(), ledger.MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		User:      in.User,
		Cost:      in.Cost,
		Notes:     in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	resp, err := h.reporting.GetMovement(c.Context(), movement.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type       query  string  false  "entrada | salida"
// @Param        category   query  string  false  "filtrar por categoría (snapshot)"
// @Param        productId  query  string  false  "filtrar por producto"
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        page       query  int     false  "página (desde 1)"
// @Param        limit      query  int     false  "tamaño de página (máx 100)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := bindQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	resp, err := h.reporting.ListMovements(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListByProduct godoc
// @Summary      Historial de movimientos de un producto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        page       query  int     false  "página (desde 1)"
// @Param        limit      query  int     false  "tamaño de página (máx 100)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements/product/{productId} [get]
func (h *MovementHandler) ListByProduct(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := bindQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	in.ProductID = c.Params("productId")
	resp, err := h.reporting.ListMovements(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Recent godoc
// @Summary      Movimientos recientes
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "cantidad (por defecto 10)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements/recent [get]
func (h *MovementHandler) Recent(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.reporting.Recent(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Stats godoc
// @Summary      Estadísticas del libro
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.MovementStatsResponse
// @Router       /api/movements/stats [get]
func (h *MovementHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.reporting.MovementStats(c.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// TopSelling godoc
// @Summary      Productos con más salidas
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "cantidad (por defecto 5)"
// @Success      200  {array}  dto.TopProductResponse
// @Router       /api/movements/top-selling [get]
func (h *MovementHandler) TopSelling(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.reporting.TopSelling(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	movement, err := h.reporting.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movement)
}
