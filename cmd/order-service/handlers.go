package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/forevershop/orders-ecom/internal/auth"
	ord "github.com/forevershop/orders-ecom/internal/order"
)

// createOrderHandler godoc
// @Summary      Place a new order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order body ord.CreateOrderRequest true "order draft"
// @Success      201 {object} ord.Order
// @Failure      400 {object} ord.HTTPError
// @Failure      401 {object} ord.HTTPError
// @Security     BearerAuth
// @Router       /api/orders [post]
func createOrderHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ord.HTTPError{Error: auth.ErrMissingCredential.Error()})
			return
		}
		var req ord.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ord.HTTPError{Error: "invalid json: " + err.Error()})
			return
		}
		o, err := svc.Create(c.Request.Context(), ident, req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// getOrderHandler godoc
// @Summary      Get one order by id
// @Tags         orders
// @Produce      json
// @Param        id path string true "order id"
// @Success      200 {object} ord.Order
// @Failure      403 {object} ord.HTTPError
// @Failure      404 {object} ord.HTTPError
// @Security     BearerAuth
// @Router       /api/orders/{id} [get]
func getOrderHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ord.HTTPError{Error: auth.ErrMissingCredential.Error()})
			return
		}
		o, err := svc.GetByID(c.Request.Context(), ident, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// listMyOrdersHandler godoc
// @Summary      List the caller's orders, newest first
// @Tags         orders
// @Produce      json
// @Success      200 {object} ord.ListResponse
// @Security     BearerAuth
// @Router       /api/orders/user [get]
func listMyOrdersHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ord.HTTPError{Error: auth.ErrMissingCredential.Error()})
			return
		}
		orders, err := svc.ListMine(c.Request.Context(), ident)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, ord.ListResponse{Orders: orders, Count: len(orders)})
	}
}

// listAllOrdersHandler godoc
// @Summary      List every order, newest first (administrators)
// @Tags         orders
// @Produce      json
// @Success      200 {object} ord.ListResponse
// @Failure      403 {object} ord.HTTPError
// @Security     BearerAuth
// @Router       /api/orders/all [get]
func listAllOrdersHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ord.HTTPError{Error: auth.ErrMissingCredential.Error()})
			return
		}
		orders, err := svc.ListAll(c.Request.Context(), ident)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, ord.ListResponse{Orders: orders, Count: len(orders)})
	}
}

// checkOrdersHandler godoc
// @Summary      Report whether the caller owns any orders
// @Tags         orders
// @Produce      json
// @Success      200 {object} ord.CheckResponse
// @Security     BearerAuth
// @Router       /api/orders/check [get]
func checkOrdersHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ord.HTTPError{Error: auth.ErrMissingCredential.Error()})
			return
		}
		n, err := svc.HasOrders(c.Request.Context(), ident)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, ord.CheckResponse{HasOrders: n > 0, Count: n})
	}
}

// updateOrderStatusHandler godoc
// @Summary      Set a new fulfillment status (administrators)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "order id"
// @Param        status body ord.UpdateStatusRequest true "new status"
// @Success      200 {object} ord.Order
// @Failure      400 {object} ord.HTTPError
// @Failure      403 {object} ord.HTTPError
// @Failure      404 {object} ord.HTTPError
// @Security     BearerAuth
// @Router       /api/orders/{id}/status [put]
func updateOrderStatusHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ord.HTTPError{Error: auth.ErrMissingCredential.Error()})
			return
		}
		var req ord.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ord.HTTPError{Error: "invalid json: " + err.Error()})
			return
		}
		o, err := svc.UpdateStatus(c.Request.Context(), ident, c.Param("id"), ord.Status(req.Status))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// updatePaymentStatusHandler godoc
// @Summary      Record a new payment status (administrators)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "order id"
// @Param        payment body ord.UpdatePaymentStatusRequest true "new payment status"
// @Success      200 {object} ord.Order
// @Failure      400 {object} ord.HTTPError
// @Failure      403 {object} ord.HTTPError
// @Failure      404 {object} ord.HTTPError
// @Security     BearerAuth
// @Router       /api/orders/{id}/payment [put]
func updatePaymentStatusHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ord.HTTPError{Error: auth.ErrMissingCredential.Error()})
			return
		}
		var req ord.UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ord.HTTPError{Error: "invalid json: " + err.Error()})
			return
		}
		o, err := svc.UpdatePaymentStatus(c.Request.Context(), ident, c.Param("id"), ord.PaymentStatus(req.PaymentStatus))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// cancelOrderHandler godoc
// @Summary      Cancel an order (owner, while still cancellable)
// @Tags         orders
// @Produce      json
// @Param        id path string true "order id"
// @Success      200 {object} ord.Order
// @Failure      400 {object} ord.HTTPError
// @Failure      403 {object} ord.HTTPError
// @Failure      404 {object} ord.HTTPError
// @Security     BearerAuth
// @Router       /api/orders/{id}/cancel [post]
func cancelOrderHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ord.HTTPError{Error: auth.ErrMissingCredential.Error()})
			return
		}
		o, err := svc.Cancel(c.Request.Context(), ident, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// writeError maps the service error taxonomy to HTTP statuses. Unknown
// errors are persistence-class failures: logged and surfaced as 500
// without detail.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ord.ErrValidation), errors.Is(err, ord.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, ord.HTTPError{Error: err.Error()})
	case errors.Is(err, ord.ErrNotFound):
		c.JSON(http.StatusNotFound, ord.HTTPError{Error: err.Error()})
	case errors.Is(err, ord.ErrForbidden):
		c.JSON(http.StatusForbidden, ord.HTTPError{Error: err.Error()})
	case errors.Is(err, ord.ErrDependency):
		c.JSON(http.StatusServiceUnavailable, ord.HTTPError{Error: err.Error()})
	default:
		rid, _ := c.Get("rid")
		log.WithFields(log.Fields{"rid": rid, "error": err}).Error("Order operation failed")
		c.JSON(http.StatusInternalServerError, ord.HTTPError{Error: "internal error"})
	}
}
