package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	catalogadp "kidsafe-backend/internal/adapter/catalog"
	httpadp "kidsafe-backend/internal/adapter/http"
	"kidsafe-backend/internal/adapter/middleware"
	"kidsafe-backend/internal/adapter/repository/mysql"
	"kidsafe-backend/internal/config"
	"kidsafe-backend/internal/infrastructure/cache"
	"kidsafe-backend/internal/infrastructure/db"
	"kidsafe-backend/internal/safety"
	"kidsafe-backend/internal/usecase/batch"
	"kidsafe-backend/internal/usecase/lifecycle"
	"kidsafe-backend/internal/usecase/partial"
	"kidsafe-backend/internal/usecase/search"
	"kidsafe-backend/internal/usecase/undo"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	// repositories + collaborators
	requests := mysql.NewRequestRepository(gdb)
	blocked := mysql.NewBlockedSearchRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	catalogClient := catalogadp.NewClient(cfg.CatalogBaseURL, time.Duration(cfg.CatalogTimeoutSecs)*time.Second)
	filter := safety.New(cfg.SafetyBlocklist, cfg.SafetyWhitelist)

	// engine
	lc := lifecycle.NewUsecase(requests, catalogClient, tx)
	resolver := partial.NewUsecase(tx)
	ledger := undo.NewLedger(rdb, lc)
	coord := batch.NewCoordinator(lc, ledger, time.Duration(cfg.UndoBatchWindowSecs)*time.Second)
	searchUC := search.NewUsecase(filter, blocked)

	// handlers
	h := httpadp.NewHandler()
	singleWindow := time.Duration(cfg.UndoSingleWindowSecs) * time.Second
	requestH := httpadp.NewRequestHandler(lc, ledger, singleWindow)
	childrenH := httpadp.NewChildrenHandler(resolver)
	batchH := httpadp.NewBatchHandler(coord, ledger)
	searchH := httpadp.NewSearchHandler(searchUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)

	e.POST("/requests", requestH.Submit)
	e.GET("/requests", requestH.List)
	e.GET("/requests/:request_id", requestH.Get)
	e.POST("/requests/:request_id/approve", requestH.Approve)
	e.POST("/requests/:request_id/deny", requestH.Deny)
	e.POST("/requests/:request_id/override", requestH.Override)

	e.GET("/requests/:request_id/children", childrenH.List)
	e.POST("/requests/:request_id/children/approve", childrenH.Approve)
	e.POST("/requests/:request_id/children/revoke", childrenH.Revoke)
	e.POST("/requests/:request_id/complete-review", childrenH.CompleteReview)

	e.POST("/requests/batch", batchH.Apply)
	e.POST("/undo", batchH.Undo)

	e.POST("/search/validate", searchH.ValidateQuery)
	e.POST("/search/screen", searchH.ScreenResults)
	e.GET("/blocked-searches", searchH.ListBlocked)
	e.POST("/blocked-searches/mark-read", searchH.MarkRead)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
