package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/galaport/wallet/internal/api"
	"github.com/galaport/wallet/internal/chainclient"
	"github.com/galaport/wallet/internal/config"
	"github.com/galaport/wallet/internal/dashboard"
	"github.com/galaport/wallet/internal/database"
	"github.com/galaport/wallet/internal/export"
	"github.com/galaport/wallet/internal/gateway"
	"github.com/galaport/wallet/internal/metadata"
	"github.com/galaport/wallet/internal/session"
	"github.com/galaport/wallet/internal/store"
	"github.com/galaport/wallet/internal/toast"
	"github.com/galaport/wallet/internal/tx"
	"github.com/galaport/wallet/internal/wallet"
	"github.com/galaport/wallet/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	app := &cli.App{
		Name:  "wallet",
		Usage: "GalaChain wallet dashboard service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the dashboard API and background workers",
				Action: runServe,
			},
			{
				Name:   "export",
				Usage:  "write a one-shot holdings report and exit",
				Action: runExport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// services is the wired object graph shared by both commands.
type services struct {
	cfg       config.Config
	pool      *pgxpool.Pool
	store     *store.Store
	toasts    *toast.Store
	txs       *tx.Store
	wallet    *wallet.Service
	dashboard *dashboard.Service
	history   tx.Repository
}

func buildServices(ctx context.Context, cfg config.Config) (*services, error) {
	var pool *pgxpool.Pool
	var history tx.Repository
	var sessions session.Repository

	if cfg.DatabaseURL != "" {
		var err error
		pool, err = database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}

		migrationsSub, err := fs.Sub(migrationsFS, "migrations")
		if err != nil {
			return nil, fmt.Errorf("creating migrations sub-fs: %w", err)
		}
		if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}

		history = tx.NewPgRepository(pool)
		sessions = session.NewPgRepository(pool)
	} else {
		slog.Warn("DATABASE_URL not set, transaction history and sessions are disabled")
	}

	gatewayClient := gateway.NewClient(cfg.GatewayURL, cfg.GatewayRetryMax, cfg.GatewayRetryBaseDelay)
	metadataClient := metadata.NewClient(cfg.APIURL, cfg.GatewayRetryMax, cfg.GatewayRetryBaseDelay)
	chainClient := chainclient.New(gateway.NewSubmitter(gatewayClient))

	s := store.New()
	toasts := toast.NewStore()
	txs := tx.NewStore(toasts)

	connector := wallet.NewStaticConnector(cfg.WalletAddress, cfg.WalletPublicKey)
	walletSvc := wallet.NewService(connector, sessions, s.Clear)

	dashboardSvc := dashboard.NewService(walletSvc, gatewayClient, chainClient, metadataClient, s, txs, history)

	return &services{
		cfg:       cfg,
		pool:      pool,
		store:     s,
		toasts:    toasts,
		txs:       txs,
		wallet:    walletSvc,
		dashboard: dashboardSvc,
		history:   history,
	}, nil
}

// connect establishes the configured wallet session, preferring a persisted
// reconnect flag over a cold connect.
func (s *services) connect(ctx context.Context) error {
	if s.cfg.WalletAddress == "" {
		slog.Warn("WALLET_ADDRESS not set, starting disconnected")
		return nil
	}

	reconnected, err := s.wallet.AutoReconnect(ctx)
	if err != nil {
		return fmt.Errorf("auto-reconnecting: %w", err)
	}
	if !reconnected {
		if _, err := s.wallet.Connect(ctx); err != nil {
			return fmt.Errorf("connecting wallet: %w", err)
		}
	}
	return nil
}

func (s *services) sheetWriter(ctx context.Context) (export.SheetWriter, error) {
	if s.cfg.SheetsSpreadsheetID != "" && s.cfg.SheetsCredentialsJSON != "" {
		return export.NewSheetsWriter(ctx, s.cfg.SheetsSpreadsheetID, s.cfg.SheetsCredentialsJSON)
	}
	if s.cfg.XLSXPath != "" {
		return export.NewXLSXWriter(s.cfg.XLSXPath), nil
	}
	return nil, nil
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	svcs, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	if svcs.pool != nil {
		defer svcs.pool.Close()
	}

	if err := svcs.connect(ctx); err != nil {
		slog.Error("initial wallet connection failed", "error", err)
	}

	refreshWorker := worker.NewRefreshWorker(svcs.dashboard, cfg.RefreshInterval)
	go refreshWorker.Run(ctx)

	if writer, err := svcs.sheetWriter(ctx); err != nil {
		return fmt.Errorf("configuring export destination: %w", err)
	} else if writer != nil {
		exportSvc := export.NewService(svcs.wallet, svcs.store, writer)
		exportWorker := worker.NewExportWorker(exportSvc, cfg.ExportInterval, nil)
		go exportWorker.Run(ctx)
	}

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, mutating endpoints are unprotected")
	}

	handler := api.NewHandler(svcs.wallet, svcs.store, svcs.dashboard, svcs.txs, svcs.toasts, svcs.history)
	srv := api.NewServer(cfg.HTTPPort, handler, cfg.AdminAPIKey)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func runExport(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	svcs, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	if svcs.pool != nil {
		defer svcs.pool.Close()
	}

	if err := svcs.connect(ctx); err != nil {
		return err
	}

	writer, err := svcs.sheetWriter(ctx)
	if err != nil {
		return fmt.Errorf("configuring export destination: %w", err)
	}
	if writer == nil {
		return fmt.Errorf("no export destination configured, set SHEETS_SPREADSHEET_ID or XLSX_EXPORT_PATH")
	}

	if err := svcs.dashboard.Refresh(ctx); err != nil {
		return fmt.Errorf("refreshing wallet state: %w", err)
	}

	exportSvc := export.NewService(svcs.wallet, svcs.store, writer)
	if err := exportSvc.Export(ctx); err != nil {
		return err
	}

	log.Println("Holdings report written")
	return nil
}
