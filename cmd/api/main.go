package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "github.com/snehaa0-0/Loan-portfolio-management/internal/adapter/http"
	appmw "github.com/snehaa0-0/Loan-portfolio-management/internal/adapter/middleware"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/adapter/repository/mysql"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/config"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/infrastructure/cache"
	"github.com/snehaa0-0/Loan-portfolio-management/internal/infrastructure/db"
	borroweruc "github.com/snehaa0-0/Loan-portfolio-management/internal/usecase/borrower"
	loanuc "github.com/snehaa0-0/Loan-portfolio-management/internal/usecase/loan"
	portfoliouc "github.com/snehaa0-0/Loan-portfolio-management/internal/usecase/portfolio"
	"github.com/snehaa0-0/Loan-portfolio-management/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connect failed")
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	u := mysql.NewGormUoW(gdb)
	loans := loanuc.NewUsecase(u, log)
	borrowers := borroweruc.NewUsecase(u, log)
	portfolio := portfoliouc.NewUsecase(u, loans, log)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loans)
	bh := httpadp.NewBorrowerHandler(borrowers)
	ph := httpadp.NewPortfolioHandler(portfolio)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	var idem echo.MiddlewareFunc
	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		idem = appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)
	} else {
		log.Warn().Msg("REDIS_ADDR unset, idempotency disabled")
		idem = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	e.GET("/health", h.Health)

	e.POST("/loans", lh.CreateLoan, idem)
	e.GET("/loans", lh.ListLoans)
	e.GET("/loans/:loan_number", lh.GetLoan)
	e.PATCH("/loans/:loan_number/status", lh.UpdateStatus)
	e.POST("/loans/:loan_number/syndications", lh.AddSyndicatePortion, idem)
	e.GET("/loans/:loan_number/syndication", lh.SyndicationStatus)
	e.POST("/loans/:loan_number/payments", lh.RegisterPayment, idem)
	e.POST("/loans/:loan_number/schedule", lh.SchedulePayments)
	e.POST("/loans/:loan_number/covenants", lh.AddCovenant)
	e.GET("/loans/:loan_number/metrics", lh.LoanMetrics)
	e.GET("/loans/:loan_number/performance", ph.Performance)

	e.POST("/participants", lh.CreateParticipant)

	e.POST("/borrowers", bh.CreateBorrower)
	e.GET("/borrowers/:id", bh.GetBorrower)
	e.POST("/borrowers/:id/statements", bh.AddStatement)
	e.GET("/borrowers/:id/statements", bh.ListStatements)

	e.GET("/portfolio/overview", ph.Overview)
	e.GET("/portfolio/syndication", ph.SyndicationReport)
	e.GET("/portfolio/maturity", ph.MaturityProfile)
	e.GET("/portfolio/covenants", ph.CovenantCompliance)
	e.GET("/portfolio/export", ph.Export)

	addr := ":" + cfg.AppPort
	log.Info().Str("addr", addr).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
