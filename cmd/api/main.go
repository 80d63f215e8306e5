package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/madar-hris/hrms-backend-go/internal/app"
	"github.com/madar-hris/hrms-backend-go/internal/config"
	"github.com/madar-hris/hrms-backend-go/internal/domain/insight"
	appHTTP "github.com/madar-hris/hrms-backend-go/internal/handler/http"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/ai"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/cron"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/sse"
	"github.com/madar-hris/hrms-backend-go/internal/repository/state"
	advanceService "github.com/madar-hris/hrms-backend-go/internal/service/advance"
	attendanceService "github.com/madar-hris/hrms-backend-go/internal/service/attendance"
	serviceAuth "github.com/madar-hris/hrms-backend-go/internal/service/auth"
	employeeService "github.com/madar-hris/hrms-backend-go/internal/service/employee"
	evaluationService "github.com/madar-hris/hrms-backend-go/internal/service/evaluation"
	hierarchyService "github.com/madar-hris/hrms-backend-go/internal/service/hierarchy"
	insightService "github.com/madar-hris/hrms-backend-go/internal/service/insight"
	payrollService "github.com/madar-hris/hrms-backend-go/internal/service/payroll"
	rewardService "github.com/madar-hris/hrms-backend-go/internal/service/reward"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	app.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, release, err := app.OpenBlobStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open storage: ", err)
	}
	defer release()

	hub := sse.NewHub()
	store, err := state.Open(ctx, blobs, hub)
	if err != nil {
		log.Fatal("Failed to load state: ", err)
	}

	employeeRepo := state.NewEmployeeRepository(store)
	attendanceRepo := state.NewAttendanceRepository(store)
	rewardRepo := state.NewRewardRepository(store)
	payrollRepo := state.NewPayrollRepository(store)
	advanceRepo := state.NewAdvanceRepository(store)
	criteriaRepo := state.NewCriteriaRepository(store)
	evaluationRepo := state.NewEvaluationRepository(store)
	hierarchyRepo := state.NewHierarchyRepository(store)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var generator insight.TextGenerator
	if cfg.Gemini.APIKey != "" {
		gemini, err := ai.NewGeminiGenerator(ctx, ai.GeminiConfig{
			APIKey:            cfg.Gemini.APIKey,
			Model:             cfg.Gemini.Model,
			SystemInstruction: insight.SystemInstruction,
		})
		if err != nil {
			slog.Error("Gemini disabled", "error", err)
		} else {
			generator = gemini
		}
	}

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	authSvc := serviceAuth.NewAuthService(employeeSvc, JWTService)
	rewardSvc := rewardService.NewRewardService(rewardRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, rewardSvc)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, attendanceRepo, rewardRepo)
	advanceSvc := advanceService.NewAdvanceService(advanceRepo, employeeRepo)
	evaluationSvc := evaluationService.NewEvaluationService(criteriaRepo, evaluationRepo, employeeRepo)
	hierarchySvc := hierarchyService.NewHierarchyService(hierarchyRepo, employeeRepo)
	insightSvc := insightService.NewInsightService(generator, payrollSvc, advanceSvc)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		Version:        version,
		AllowedOrigins: cfg.App.AllowedOrigins,
		LogLevel:       app.ParseLevel(cfg.App.LogLevel),
	}, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, employeeSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Reward:     appHTTP.NewRewardHandler(rewardSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Advance:    appHTTP.NewAdvanceHandler(advanceSvc),
		Evaluation: appHTTP.NewEvaluationHandler(evaluationSvc),
		Hierarchy:  appHTTP.NewHierarchyHandler(hierarchySvc),
		Insight:    appHTTP.NewInsightHandler(insightSvc),
		Events:     appHTTP.NewEventsHandler(hub, JWTService),
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, cfg.Location(), cfg.Jobs.AutoCheckOutInterval).RegisterJobs(scheduler)
	cron.NewPayrollJobs(payrollSvc, cfg.Location(), cfg.Jobs.LedgerInterval).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.Storage.Type, "version", version)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
		}
	}

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	if err := store.Flush(shutdownCtx); err != nil {
		slog.Error("Final state flush failed", "error", err)
	}
}
