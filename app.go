package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cdtdelta/stockdbms/internal/chart"
	"github.com/cdtdelta/stockdbms/internal/config"
	"github.com/cdtdelta/stockdbms/internal/database"
	"github.com/cdtdelta/stockdbms/internal/model"
	"github.com/cdtdelta/stockdbms/internal/shell"
	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"
)

// App is the main application struct that Wails binds to the frontend.
// All exported methods become callable from JavaScript.
type App struct {
	ctx  context.Context
	cfg  *config.Config
	log  *zap.Logger
	ctrl *shell.Controller
}

// NewApp creates a new App instance.
func NewApp(cfg *config.Config, log *zap.Logger) *App {
	a := &App{cfg: cfg, log: log}
	a.ctrl = shell.New(
		database.NewManager(cfg.Database.Dir, cfg.Database.Extension),
		dialogNotifier{app: a},
		log,
		shell.Options{
			ExportPath: cfg.ExportPath(),
			Chart:      chart.Options{Width: cfg.Chart.Width, Height: cfg.Chart.Height},
		},
	)
	return a
}

// startup is called when the app starts. The context is saved
// so we can call runtime methods (dialogs, events, etc.)
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	if err := a.ctrl.Start(a.cfg.Database.Default); err != nil {
		a.log.Error("opening default database", zap.String("database", a.cfg.Database.Default), zap.Error(err))
		dialogNotifier{app: a}.Error("Error", fmt.Sprintf("Could not open database '%s': %v", a.cfg.Database.Default, err))
	}
}

// shutdown is called when the app is closing.
func (a *App) shutdown(ctx context.Context) {
	if err := a.ctrl.Close(); err != nil {
		a.log.Warn("closing database on shutdown", zap.Error(err))
	}
}

// dialogNotifier shows controller notices as native message dialogs.
type dialogNotifier struct {
	app *App
}

func (n dialogNotifier) Info(title, message string) {
	n.show(runtime.MessageDialogOptions{Type: runtime.InfoDialog, Title: title, Message: message})
}

func (n dialogNotifier) Error(title, message string) {
	n.show(runtime.MessageDialogOptions{Type: runtime.ErrorDialog, Title: title, Message: message})
}

func (n dialogNotifier) show(opts runtime.MessageDialogOptions) {
	if n.app.ctx == nil {
		return
	}
	if _, err := runtime.MessageDialog(n.app.ctx, opts); err != nil {
		n.app.log.Warn("message dialog failed", zap.String("title", opts.Title), zap.Error(err))
	}
}

// -- Database Operations --

// CreateDatabase creates a named database. An empty name is a cancelled prompt.
func (a *App) CreateDatabase(name string) error {
	return a.ctrl.CreateDatabase(name)
}

// SwitchDatabase makes the named database active.
func (a *App) SwitchDatabase(name string) error {
	return a.ctrl.SwitchDatabase(name)
}

// DeleteDatabase removes the named database file.
func (a *App) DeleteDatabase(name string) error {
	return a.ctrl.DeleteDatabase(name)
}

// ListDatabases returns the known database names for the name pickers.
func (a *App) ListDatabases() ([]string, error) {
	return a.ctrl.ListDatabases()
}

// CurrentDatabase returns the active database, or nil if none is active.
func (a *App) CurrentDatabase() (*shell.DBInfo, error) {
	return a.ctrl.Current()
}

// -- Stock Operations --

// AddStock coerces and stores the form, then returns the refreshed views.
func (a *App) AddStock(form model.StockForm) (*shell.View, error) {
	return a.ctrl.AddStock(form)
}

// ShowStocks returns freshly read table and chart views.
func (a *App) ShowStocks() (*shell.View, error) {
	return a.ctrl.ShowStocks()
}

// GetChart returns a fresh chart drawing.
func (a *App) GetChart() (*chart.Snapshot, error) {
	return a.ctrl.Chart()
}

// -- Import / Export --

// ExportExcel writes all stocks to the fixed workbook and returns its path.
func (a *App) ExportExcel() (string, error) {
	return a.ctrl.ExportExcel()
}

// ExportCSV asks where to save and writes all stocks as CSV.
func (a *App) ExportCSV() (string, error) {
	savePath, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Export to CSV",
		DefaultFilename: "stock_data.csv",
		Filters: []runtime.FileFilter{
			{DisplayName: "CSV Files (*.csv)", Pattern: "*.csv"},
		},
	})
	if err != nil {
		return "", err
	}
	if savePath == "" {
		return "", nil // user cancelled
	}

	n, err := a.ctrl.ExportCSV(savePath)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Exported %d stocks to %s", n, savePath), nil
}

// ImportCSV asks for a CSV file and appends its rows to the active database.
func (a *App) ImportCSV() (*shell.View, error) {
	csvPath, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Import Stocks from CSV",
		Filters: []runtime.FileFilter{
			{DisplayName: "CSV Files (*.csv)", Pattern: "*.csv"},
			{DisplayName: "All Files (*.*)", Pattern: "*.*"},
		},
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(csvPath) == "" {
		return nil, nil
	}

	// Validate the CSV header before touching the database
	if err := a.ctrl.CheckCSVHeader(csvPath); err != nil {
		return nil, err
	}

	return a.ctrl.ImportCSV(csvPath, func(count int) {
		runtime.EventsEmit(a.ctx, "import:progress", map[string]interface{}{
			"message": fmt.Sprintf("Inserted %d stocks...", count), "count": count,
		})
	})
}

// GetVersion returns the application version string.
func (a *App) GetVersion() string {
	return Version
}
