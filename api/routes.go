package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/account"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/common"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/report"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/settings"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/status"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/summary"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger         *logrus.Logger
	Port           string
	Ledger         *ledger.Ledger
	Service        *service.Service
	Operator       common.ActionProcessor
	ReportFilename string
}

// Router builds the chi router with /status and every v1 endpoint mounted.
func (r *Rest) Router() http.Handler {
	router := chi.NewRouter()

	statusHandler := status.NewHandler(r.Ledger)
	router.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	router.Group(func(v1 chi.Router) {
		v1.Use(logging.Middleware(r.Logger))
		api := humachi.New(v1, huma.DefaultConfig("budget-ledger", "1.0.0"))

		account.NewListAccountsHandler(r.Service.Account).Register(api)
		account.NewCreateAccountHandler(r.Operator).Register(api)
		account.NewUpdateAccountHandler(r.Operator).Register(api)

		transaction.NewListTransactionsHandler(r.Service.Transaction).Register(api)
		transaction.NewCreateTransactionHandler(r.Operator).Register(api)
		transaction.NewUpdateTransactionHandler(r.Operator).Register(api)
		transaction.NewDeleteTransactionHandler(r.Operator).Register(api)

		summary.NewMonthSummaryHandler(r.Service.Summary).Register(api)
		settings.NewSetDisplayNameHandler(r.Operator).Register(api)
		report.NewExportHandler(r.Ledger, r.ReportFilename).Register(api)
	})

	return router
}

// Serve listens until ctx is cancelled, then shuts the server down.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Router(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	r.Logger.Info("HttpServer.Serve.shutting down")
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	}
	return nil
}
