package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/cdtdelta/stockdbms/internal/config"
	"github.com/cdtdelta/stockdbms/internal/logging"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"
)

//go:embed all:frontend/dist
var assets embed.FS

func loadConfig() *config.Config {
	path, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
		return config.Default()
	}
	if err := config.WriteDefault(path); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
		return config.Default()
	}
	return cfg
}

func main() {
	cfg := loadConfig()

	log, err := logging.New(cfg.Log)
	if err != nil {
		println("Error:", err.Error())
		os.Exit(1)
	}
	defer log.Sync()

	app := NewApp(cfg, log)

	appMenu := menu.NewMenu()

	fileMenu := appMenu.AddSubmenu("File")
	fileMenu.AddText("Create Database...", keys.CmdOrCtrl("n"), func(cd *menu.CallbackData) {
		runtime.EventsEmit(app.ctx, "menu:create-database")
	})
	fileMenu.AddText("Switch Database...", keys.CmdOrCtrl("o"), func(cd *menu.CallbackData) {
		runtime.EventsEmit(app.ctx, "menu:switch-database")
	})
	fileMenu.AddText("Delete Database...", nil, func(cd *menu.CallbackData) {
		runtime.EventsEmit(app.ctx, "menu:delete-database")
	})
	fileMenu.AddSeparator()
	fileMenu.AddText("Import CSV", keys.CmdOrCtrl("i"), func(cd *menu.CallbackData) {
		runtime.EventsEmit(app.ctx, "menu:import-csv")
	})
	fileMenu.AddText("Export CSV", nil, func(cd *menu.CallbackData) {
		runtime.EventsEmit(app.ctx, "menu:export-csv")
	})
	fileMenu.AddText("Export to Excel", keys.CmdOrCtrl("e"), func(cd *menu.CallbackData) {
		runtime.EventsEmit(app.ctx, "menu:export-excel")
	})
	fileMenu.AddSeparator()
	fileMenu.AddText("Quit", keys.CmdOrCtrl("q"), func(cd *menu.CallbackData) {
		runtime.Quit(app.ctx)
	})

	editMenu := appMenu.AddSubmenu("Edit")
	editMenu.AddText("Cut", keys.CmdOrCtrl("x"), nil)
	editMenu.AddText("Copy", keys.CmdOrCtrl("c"), nil)
	editMenu.AddText("Paste", keys.CmdOrCtrl("v"), nil)
	editMenu.AddText("Select All", keys.CmdOrCtrl("a"), nil)

	viewMenu := appMenu.AddSubmenu("View")
	viewMenu.AddText("Show Stocks", keys.CmdOrCtrl("r"), func(cd *menu.CallbackData) {
		runtime.EventsEmit(app.ctx, "menu:show-stocks")
	})

	err = wails.Run(&options.App{
		Title:  "Stock Market DBMS v" + Version,
		Width:  1075,
		Height: 640,
		Menu:   appMenu,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Logger:     logging.NewWailsLogger(log),
		LogLevel:   logging.WailsLevel(cfg.Log.Level),
		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		log.Error("wails run failed", zap.Error(err))
	}
}
