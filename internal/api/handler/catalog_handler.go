package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/studiolume/pos-backoffice/internal/core/ports"
)

// ClientHandler handles HTTP requests for the client roster.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type createClientRequest struct {
	Name  string `json:"name"  validate:"required"`
	Phone string `json:"phone"`
}

// Create handles POST /v1/clients.
//
// @Summary      Register a new client
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	client, err := h.service.CreateClient(c.Request().Context(), req.Name, req.Phone)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

// List handles GET /v1/clients.
//
// @Summary      List clients ordered by name
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Client
// @Failure      500  {object}  errorResponse
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.ListClients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// ServiceTypeHandler handles HTTP requests for the service catalog.
type ServiceTypeHandler struct {
	service ports.ServiceTypeService
}

func NewServiceTypeHandler(service ports.ServiceTypeService) *ServiceTypeHandler {
	return &ServiceTypeHandler{service: service}
}

type createServiceTypeRequest struct {
	Name         string          `json:"name" validate:"required"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}

// Create handles POST /v1/service-types.
//
// @Summary      Add a service type to the catalog
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createServiceTypeRequest  true  "Service type details"
// @Success      201   {object}  domain.ServiceType
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/service-types [post]
func (h *ServiceTypeHandler) Create(c echo.Context) error {
	var req createServiceTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	st, err := h.service.CreateServiceType(c.Request().Context(), req.Name, req.DefaultPrice)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, st)
}

// List handles GET /v1/service-types.
//
// @Summary      List service types ordered by name
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ServiceType
// @Failure      500  {object}  errorResponse
// @Router       /v1/service-types [get]
func (h *ServiceTypeHandler) List(c echo.Context) error {
	types, err := h.service.ListServiceTypes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, types)
}
