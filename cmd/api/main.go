package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/clevelandclean/payroll-backend-go/internal/config"
	appHTTP "github.com/clevelandclean/payroll-backend-go/internal/handler/http"
	"github.com/clevelandclean/payroll-backend-go/internal/pkg/database"
	"github.com/clevelandclean/payroll-backend-go/internal/pkg/jwt"
	"github.com/clevelandclean/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/clevelandclean/payroll-backend-go/internal/service/payroll"
	rateService "github.com/clevelandclean/payroll-backend-go/internal/service/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	rateRepo := postgresql.NewRateRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	runRepo := postgresql.NewPayrollRunRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	resolver := rateService.NewResolver(rateRepo)
	payroll := payrollService.NewPayrollService(runRepo, timesheetRepo, jobRepo, resolver)

	payrollHandler := appHTTP.NewPayrollHandler(payroll)
	router := appHTTP.NewRouter(cfg, jwtService, userRepo, payrollHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("payroll API listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
