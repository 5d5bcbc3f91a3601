package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/okstores/minimart/internal/catalog"
	"github.com/okstores/minimart/internal/httpx"
	"github.com/okstores/minimart/internal/order"
)

// errStatus maps the business error taxonomy to HTTP codes. Anything
// unrecognized is a storage failure.
func errStatus(err error) int {
	switch {
	case errors.Is(err, order.ErrValidation),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, catalog.ErrInsufficientStock),
		errors.Is(err, catalog.ErrCategoryExists):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, catalog.ErrCategoryNotFound),
		errors.Is(err, catalog.ErrItemNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// validPrice rejects strings Postgres would choke on before they reach the store.
func validPrice(s string) bool {
	d, err := decimal.NewFromString(s)
	return err == nil && !d.IsNegative()
}

func fail(c *gin.Context, err error) {
	code := errStatus(err)
	if code == http.StatusInternalServerError {
		log.Printf("[server] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		httpx.Error(c, code, "unexpected error")
		return
	}
	httpx.Error(c, code, err.Error())
}

//
// ---------- ORDER WORKFLOW ----------
//

// createOrderHandler godoc
// @Summary Place an order
// @Accept json
// @Produce json
// @Param request body order.CreateOrderRequest true "order request"
// @Success 201 {object} map[string]any
// @Router /createorder [post]
func createOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Error(c, http.StatusBadRequest, "invalid json")
			return
		}
		o, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": o})
	}
}

// updateOrderStatusHandler godoc
// @Summary Change an order's status
// @Produce json
// @Param order_id path string true "order id"
// @Router /update_order_status/{order_id} [put]
func updateOrderStatusHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Error(c, http.StatusBadRequest, "invalid json")
			return
		}
		o, err := svc.UpdateStatus(c.Request.Context(), c.Param("order_id"), req.Status)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": o})
	}
}

// listUserOrdersHandler godoc
// @Summary List a customer's orders, newest first
// @Produce json
// @Param mobile_number path string true "customer mobile number"
// @Router /get_user_orders/{mobile_number} [get]
func listUserOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.CustomerOrders(c.Request.Context(), c.Param("mobile_number"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// listAllOrdersHandler godoc
// @Summary List all orders, newest first
// @Produce json
// @Router /get_all_orders [get]
func listAllOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.AllOrders(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// deleteOrderHandler godoc
// @Summary Delete an order
// @Produce json
// @Param order_id path string true "order id"
// @Router /delete_order/{order_id} [delete]
func deleteOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("order_id")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}

//
// ---------- CATALOG ----------
//

func addCategoryHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Error(c, http.StatusBadRequest, "invalid json")
			return
		}
		if req.Name == "" {
			httpx.Error(c, http.StatusBadRequest, "category name is required")
			return
		}
		cat := &catalog.Category{ID: uuid.NewString(), Name: req.Name, Description: req.Description}
		if err := repo.CreateCategory(c.Request.Context(), cat); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Category added successfully"})
	}
}

func deleteCategoryHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.DeleteCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Error(c, http.StatusBadRequest, "invalid json")
			return
		}
		if req.Name == "" {
			httpx.Error(c, http.StatusBadRequest, "category name is required")
			return
		}
		if err := repo.DeleteCategory(c.Request.Context(), req.Name); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}

func addItemHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Error(c, http.StatusBadRequest, "invalid json")
			return
		}
		if req.CategoryName == "" {
			httpx.Error(c, http.StatusBadRequest, "category name is required")
			return
		}
		if req.Name == "" {
			httpx.Error(c, http.StatusBadRequest, "item name is required")
			return
		}
		if req.StockAvailable < 0 {
			httpx.Error(c, http.StatusBadRequest, "stock available must be non-negative")
			return
		}
		price := req.Price
		if price == "" {
			price = "0"
		}
		if !validPrice(price) {
			httpx.Error(c, http.StatusBadRequest, "price must be a non-negative number")
			return
		}
		it := &catalog.Item{
			ID:             uuid.NewString(),
			Name:           req.Name,
			Description:    req.Description,
			Quantity:       req.Quantity,
			Price:          price,
			StockAvailable: req.StockAvailable,
		}
		if err := repo.AddItem(c.Request.Context(), req.CategoryName, it); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Item added successfully", "item": it})
	}
}

func updateItemHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Error(c, http.StatusBadRequest, "invalid json")
			return
		}
		if req.CategoryName == "" {
			httpx.Error(c, http.StatusBadRequest, "category name is required")
			return
		}
		if req.ItemID == "" {
			httpx.Error(c, http.StatusBadRequest, "item id is required")
			return
		}
		if req.Name == nil && req.Description == nil && req.Quantity == nil &&
			req.Price == nil && req.StockAvailable == nil {
			httpx.Error(c, http.StatusBadRequest, "no fields to update")
			return
		}
		if req.Price != nil && !validPrice(*req.Price) {
			httpx.Error(c, http.StatusBadRequest, "price must be a non-negative number")
			return
		}
		if err := repo.UpdateItem(c.Request.Context(), req); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully"})
	}
}

func deleteItemHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.DeleteItem(c.Request.Context(), c.Param("item_id")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
	}
}

func listItemsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := repo.ListCategories(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		if cats == nil {
			cats = []catalog.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"categories": cats})
	}
}
