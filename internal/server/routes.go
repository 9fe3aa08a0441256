package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	itemH *handler.ItemHandler,
	cartH *handler.CartHandler,
	checkoutH *handler.CheckoutHandler,
	paymentH *handler.PaymentHandler,
) {
	itemH.RegisterRoutes(e)
	cartH.RegisterRoutes(e, cfg)
	checkoutH.RegisterRoutes(e, cfg)
	paymentH.RegisterRoutes(e, cfg)
}
