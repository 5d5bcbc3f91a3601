package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/okstores/minimart/internal/catalog"
	"github.com/okstores/minimart/internal/config"
	"github.com/okstores/minimart/internal/db"
	"github.com/okstores/minimart/internal/httpx"
	"github.com/okstores/minimart/internal/order"
)

func newRouter(catRepo catalog.Repository, svc *order.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/createorder", createOrderHandler(svc))
	r.PUT("/update_order_status/:order_id", updateOrderStatusHandler(svc))
	r.GET("/get_user_orders/:mobile_number", listUserOrdersHandler(svc))
	r.GET("/get_all_orders", listAllOrdersHandler(svc))
	r.DELETE("/delete_order/:order_id", deleteOrderHandler(svc))

	r.POST("/addcategory", addCategoryHandler(catRepo))
	r.DELETE("/deletecategory", deleteCategoryHandler(catRepo))
	r.POST("/additem", addItemHandler(catRepo))
	r.PUT("/updateitem", updateItemHandler(catRepo))
	r.DELETE("/deleteitem/:item_id", deleteItemHandler(catRepo))
	r.GET("/getitems", listItemsHandler(catRepo))

	return r
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[server] postgres connect: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("[server] schema: %v", err)
	}

	catRepo := catalog.NewPGRepo(pool)
	orderRepo := order.NewPGRepo(pool)
	svc := order.NewService(catRepo, orderRepo)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: newRouter(catRepo, svc),
	}

	go func() {
		log.Printf("[server] listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] shutdown: %v", err)
	}
}
