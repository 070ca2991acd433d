package controller

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"tienda-api/internal/dto"
	"tienda-api/internal/service"
	"tienda-api/pkg/errs"
	"tienda-api/pkg/response"
)

// signatureHeader carries the provider's signature over the raw body.
const signatureHeader = "Stripe-Signature"

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(e *echo.Echo, service service.OrderService) {
	c := OrderController{
		service: service,
	}

	e.GET("/pedidos", c.GetOrders)
	e.POST("/pedidos", c.AddOrder)
	e.POST("/crear-pago", c.CreateCheckout)
	e.POST("/webhook", c.Webhook)
}

func (c *OrderController) GetOrders(e echo.Context) error {
	data, err := c.service.GetOrders(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return e.JSON(http.StatusOK, data)
}

func (c *OrderController) AddOrder(e echo.Context) error {
	payload := dto.OrderRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Error().Err(err).Str("component", "AddOrder").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.AddOrder(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return e.JSON(http.StatusOK, resp)
}

func (c *OrderController) CreateCheckout(e echo.Context) error {
	payload := dto.PaymentRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Error().Err(err).Str("component", "CreateCheckout").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.CreateCheckoutSession(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return e.JSON(http.StatusOK, resp)
}

// Webhook hands the raw body and signature header to the service; the body
// must not be parsed before verification.
func (c *OrderController) Webhook(e echo.Context) error {
	payload, err := io.ReadAll(e.Request().Body)
	if err != nil {
		log.Error().Err(err).Str("component", "Webhook").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	err = c.service.HandlePaymentEvent(e.Request().Context(), payload, e.Request().Header.Get(signatureHeader))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return e.NoContent(http.StatusOK)
}
