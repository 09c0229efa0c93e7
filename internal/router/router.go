package router

import (
	"net/http"
	"time"

	"coachpay/config"
	"coachpay/internal/domain"
	"coachpay/internal/handler"
	"coachpay/internal/middleware"
	"coachpay/internal/repository"
	"coachpay/internal/service"
	"coachpay/internal/ws"
	"coachpay/pkg/monthkey"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Deps are the long-lived objects the router wires together; main.go keeps
// a reference so background jobs share the same services.
type Deps struct {
	Payroll  *service.PayrollService
	Reports  *service.ReportService
	Ranking  *service.RankingService
	Finalize *service.FinalizeService
	Hub      *ws.LeaderboardHub
}

func registerMonthValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
			return monthkey.Valid(fl.Field().String())
		})
	}
}

func Setup(cfg *config.Config, db *gorm.DB) (*gin.Engine, *Deps) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerMonthValidator()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	coachRepo := repository.NewCoachRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	reportRepo := repository.NewReportRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	sessionRepo := repository.NewPTSessionRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	hub := ws.NewLeaderboardHub()

	// Services
	ptSvc := service.NewPTService(receiptRepo, sessionRepo, coachRepo)
	payrollSvc := service.NewPayrollService(memberRepo, ledgerRepo)
	reportSvc := service.NewReportService(coachRepo, memberRepo, ledgerRepo, referralRepo,
		settingRepo, leaderboardRepo, ptSvc, reportRepo)
	rankingSvc := service.NewRankingService(coachRepo, ledgerRepo, leaderboardRepo, ptSvc,
		hub, cfg.Leaderboard.MaxAge)
	finalizeSvc := service.NewFinalizeService(reportRepo, ledgerRepo)
	enrollmentSvc := service.NewEnrollmentService(memberRepo, coachRepo, ledgerRepo, referralRepo)
	referralSvc := service.NewReferralService(referralRepo, ledgerRepo, settingRepo, coachRepo, memberRepo)
	settingSvc := service.NewSettingService(settingRepo)

	// Handlers
	commissionHandler := handler.NewCommissionHandler(payrollSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	rankingHandler := handler.NewRankingHandler(rankingSvc)
	finalizeHandler := handler.NewFinalizeHandler(finalizeSvc)
	memberHandler := handler.NewMemberHandler(enrollmentSvc)
	referralHandler := handler.NewReferralHandler(referralSvc)
	ptHandler := handler.NewPTHandler(ptSvc)
	settingHandler := handler.NewSettingHandler(settingSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.RequirePosition(domain.PositionAdmin)
	staffMw := middleware.RequirePosition(domain.PositionAdmin, domain.PositionCoach)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ws/leaderboard", ws.UpgradeLeaderboardWS(&cfg.JWT, hub))

	api := r.Group("/api/v1")
	api.Use(authMw)
	{
		// Any staff member can read reports and rankings.
		read := api.Group("")
		read.Use(staffMw)
		{
			read.GET("/coaches/:id/report", reportHandler.GetReport)
			read.GET("/coaches/:id/income", reportHandler.GetIncome)
			read.GET("/coaches/:id/entries", reportHandler.GetEntries)
			read.GET("/coaches/:id/referrals", referralHandler.List)
			read.GET("/rankings", rankingHandler.GetLeaderboard)
			read.GET("/pt/attribution", ptHandler.Attribution)
		}

		// Batch jobs, ingestion and the month-close workflow are admin-only.
		admin := api.Group("")
		admin.Use(adminMw)
		{
			admin.POST("/commissions/sync", commissionHandler.SyncRecurring)
			admin.POST("/rankings/recompute", rankingHandler.Recompute)
			admin.POST("/months/:month/finalize", finalizeHandler.Finalize)
			admin.POST("/months/:month/reopen", finalizeHandler.Reopen)
			admin.POST("/members", memberHandler.Register)
			admin.POST("/members/:id/upgrade", memberHandler.Upgrade)
			admin.POST("/referrals", referralHandler.Record)
			admin.POST("/pt/backfill-coaches", ptHandler.BackfillCoaches)
			admin.GET("/settings", settingHandler.List)
			admin.PUT("/settings/:key", settingHandler.Update)
		}
	}

	return r, &Deps{
		Payroll:  payrollSvc,
		Reports:  reportSvc,
		Ranking:  rankingSvc,
		Finalize: finalizeSvc,
		Hub:      hub,
	}
}
