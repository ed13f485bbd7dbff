package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "bulkpay-backend/internal/adapter/http"
	idemp "bulkpay-backend/internal/adapter/middleware"
	registryadp "bulkpay-backend/internal/adapter/registry"
	"bulkpay-backend/internal/adapter/repository/mysql"
	"bulkpay-backend/internal/config"
	domainRegistry "bulkpay-backend/internal/domain/registry"
	"bulkpay-backend/internal/infrastructure/cache"
	"bulkpay-backend/internal/infrastructure/db"
	ucBatch "bulkpay-backend/internal/usecase/batch"
	ucPayment "bulkpay-backend/internal/usecase/payment"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// Registry lookup: HTTP client (cached through redis) or the
	// static dev table.
	var lookup domainRegistry.Lookup
	switch cfg.RegistryMode {
	case "static":
		lookup = registryadp.NewStaticLookup(nil)
	default:
		client := registryadp.NewClient(cfg.RegistryBaseURL, time.Duration(cfg.RegistryTimeoutSecs)*time.Second)
		lookup = registryadp.NewCachedLookup(client, rdb, time.Duration(cfg.RegistryCacheTTLSecs)*time.Second)
	}

	payments := mysql.NewPaymentRepository(gdb)
	snapshots := mysql.NewSnapshotRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	batchUC := ucBatch.NewUsecase(lookup, time.Duration(cfg.RegistryTimeoutSecs)*time.Second)
	paymentUC := ucPayment.NewUsecase(payments, snapshots, batchUC, tx)

	h := httpadp.NewHandler()
	bh := httpadp.NewBatchHandler(batchUC)
	ph := httpadp.NewPaymentHandler(paymentUC)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover())
	e.Validator = httpadp.NewValidator()

	idempotent := idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)

	e.POST("/batches", bh.CreateBatch)
	e.GET("/batches/:batch_id", bh.GetBatch)
	e.POST("/batches/:batch_id/recipients", bh.AddRecipient)
	e.PATCH("/batches/:batch_id/recipients/:recipient_id", bh.UpdateRecipient)
	e.DELETE("/batches/:batch_id/recipients/:recipient_id", bh.RemoveRecipient)
	e.POST("/batches/:batch_id/recipients/:recipient_id/validate", bh.ValidateRecipient)
	e.POST("/batches/:batch_id/validate", bh.ValidateAll)
	e.GET("/batches/:batch_id/export", bh.ExportCSV)
	e.POST("/batches/:batch_id/submit", ph.SubmitBatch, idempotent)

	e.GET("/payments", ph.ListPayments)
	e.GET("/payments/:payment_id", ph.GetPayment)
	e.POST("/payments/:payment_id/approve", ph.ApprovePayment, idempotent)
	e.POST("/payments/:payment_id/reject", ph.RejectPayment, idempotent)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
