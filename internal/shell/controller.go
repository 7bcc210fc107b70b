// Package shell wires user actions to the stock database, the table and
// chart views, and the exporters. It owns the single active database handle.
package shell

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/cdtdelta/stockdbms/internal/chart"
	"github.com/cdtdelta/stockdbms/internal/database"
	"github.com/cdtdelta/stockdbms/internal/export"
	"github.com/cdtdelta/stockdbms/internal/model"
	"github.com/cdtdelta/stockdbms/internal/table"
	"go.uber.org/zap"
)

// ErrNoDatabase is returned by stock actions when no database is active,
// which happens after the active database has been deleted.
var ErrNoDatabase = errors.New("no database selected")

// Options configures a Controller.
type Options struct {
	// ExportPath is the workbook written by ExportExcel.
	ExportPath string
	Chart      chart.Options
}

// View is a full refresh of both display regions.
type View struct {
	Database string          `json:"database"`
	Table    table.Grid      `json:"table"`
	Chart    *chart.Snapshot `json:"chart"`
}

// DBInfo describes the active database.
type DBInfo struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	StockCount int64  `json:"stockCount"`
}

// Controller serialises every user action and routes it through the one
// active Store. Switching opens the new store before closing the old one, so
// at most one handle is live once a switch returns.
type Controller struct {
	mu      sync.Mutex
	manager *database.Manager
	notify  Notifier
	log     *zap.Logger
	opts    Options

	store database.Store
	name  string
}

// New returns a Controller with no active database. Call Start to open one.
func New(manager *database.Manager, notify Notifier, log *zap.Logger, opts Options) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.ExportPath == "" {
		opts.ExportPath = export.DefaultFilename
	}
	return &Controller{manager: manager, notify: notify, log: log, opts: opts}
}

// Start makes the named database active, creating it first if it has no file.
func (c *Controller) Start(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.manager.Create(name); err != nil {
		return err
	}
	store, err := c.manager.Open(name)
	if err != nil {
		return err
	}
	c.replace(store, strings.TrimSpace(name))
	c.log.Info("database opened", zap.String("database", c.name), zap.String("path", store.Path()))
	return nil
}

// Close releases the active database handle.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.replace(nil, "")
}

// replace swaps in a new active store and closes the previous one.
func (c *Controller) replace(store database.Store, name string) error {
	old := c.store
	c.store, c.name = store, name
	if old == nil {
		return nil
	}
	if err := old.Close(); err != nil {
		c.log.Warn("closing database", zap.String("path", old.Path()), zap.Error(err))
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Current returns the active database, or nil if none is active.
func (c *Controller) Current() (*DBInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store == nil {
		return nil, nil
	}
	count, err := c.store.CountStocks()
	if err != nil {
		return nil, fmt.Errorf("counting stocks: %w", err)
	}
	return &DBInfo{Name: c.name, Path: c.store.Path(), StockCount: count}, nil
}

// ListDatabases returns the names of all databases the manager can see.
func (c *Controller) ListDatabases() ([]string, error) {
	return c.manager.List()
}

// -- Database File Operations --

// CreateDatabase creates the named database if it does not exist yet. An
// empty name (a cancelled prompt) does nothing. The active database is not
// changed, unless none is active, in which case the new one is opened.
func (c *Controller) CreateDatabase(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	path, err := c.manager.Create(name)
	if err != nil {
		c.log.Error("create database failed", zap.String("database", name), zap.Error(err))
		c.notify.Error(titleError, err.Error())
		return err
	}

	c.log.Info("database created", zap.String("database", name), zap.String("path", path))

	if c.store == nil {
		store, err := c.manager.Open(name)
		if err != nil {
			c.reportFileError("open", name, err)
			return err
		}
		c.replace(store, name)
		c.log.Info("database opened", zap.String("database", name), zap.String("path", store.Path()))
	}

	c.notify.Info(titleSuccess, fmt.Sprintf(fmtCreated, name))
	return nil
}

// SwitchDatabase makes the named database active. A missing database is
// reported and leaves the current one active.
func (c *Controller) SwitchDatabase(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	store, err := c.manager.Open(name)
	if err != nil {
		c.reportFileError("switch", name, err)
		return err
	}

	if err := c.replace(store, name); err != nil {
		c.notify.Error(titleError, err.Error())
		return err
	}

	c.log.Info("database switched", zap.String("database", name), zap.String("path", store.Path()))
	c.notify.Info(titleSuccess, fmt.Sprintf(fmtSwitched, name))
	return nil
}

// DeleteDatabase removes the named database file. Deleting the active
// database closes its handle first; stock actions then fail with
// ErrNoDatabase until another database is created or switched to.
func (c *Controller) DeleteDatabase(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.manager.Exists(name) {
		err := fmt.Errorf("%w: %s", database.ErrNotFound, name)
		c.reportFileError("delete", name, err)
		return err
	}

	if c.store != nil && sameFile(c.store.Path(), c.manager.Path(name)) {
		if err := c.replace(nil, ""); err != nil {
			c.notify.Error(titleError, err.Error())
			return err
		}
		c.log.Info("active database closed for deletion", zap.String("database", name))
	}

	if err := c.manager.Delete(name); err != nil {
		c.reportFileError("delete", name, err)
		return err
	}

	c.log.Info("database deleted", zap.String("database", name))
	c.notify.Info(titleSuccess, fmt.Sprintf(fmtDeleted, name))
	return nil
}

// sameFile reports whether both paths name the same file on disk, which
// raw string comparison misses on case-insensitive filesystems.
func sameFile(a, b string) bool {
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}

func (c *Controller) reportFileError(action, name string, err error) {
	c.log.Warn(action+" database failed", zap.String("database", name), zap.Error(err))
	if errors.Is(err, database.ErrNotFound) {
		c.notify.Error(titleError, fmt.Sprintf(fmtMissing, name))
		return
	}
	c.notify.Error(titleError, err.Error())
}

// -- Stock Operations --

// activeStore returns the active store or reports ErrNoDatabase. Callers hold mu.
func (c *Controller) activeStore() (database.Store, error) {
	if c.store == nil {
		c.notify.Error(titleError, msgNoDatabase)
		return nil, ErrNoDatabase
	}
	return c.store, nil
}

// AddStock coerces the form, inserts the stock and refreshes both views.
// Malformed price or volume text is reported and nothing is inserted.
func (c *Controller) AddStock(form model.StockForm) (*View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	store, err := c.activeStore()
	if err != nil {
		return nil, err
	}

	s, err := model.ParseStock(form)
	if err != nil {
		c.log.Info("rejected stock input", zap.Error(err))
		c.notify.Error(titleInvalid, err.Error())
		return nil, err
	}

	if err := store.InsertStock(s); err != nil {
		c.log.Error("insert failed", zap.String("symbol", s.Symbol), zap.Error(err))
		c.notify.Error(titleError, err.Error())
		return nil, err
	}
	c.log.Info("stock added",
		zap.String("database", c.name),
		zap.String("symbol", s.Symbol),
		zap.String("price", s.Price.String()),
		zap.Int64("volume", s.Volume),
	)

	return c.refresh(store)
}

// ShowStocks re-reads the table and chart. An empty database is reported
// with a notice and returns an empty view.
func (c *Controller) ShowStocks() (*View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	store, err := c.activeStore()
	if err != nil {
		return nil, err
	}
	return c.refresh(store)
}

func (c *Controller) refresh(store database.Store) (*View, error) {
	grid, err := table.Refresh(store)
	if errors.Is(err, table.ErrEmpty) {
		c.notify.Info(titleEmpty, table.ErrEmpty.Error())
	} else if err != nil {
		c.log.Error("table refresh failed", zap.Error(err))
		c.notify.Error(titleError, err.Error())
		return nil, err
	}

	snap, err := chart.Refresh(store, c.opts.Chart)
	if err != nil {
		c.log.Error("chart refresh failed", zap.Error(err))
		c.notify.Error(titleError, err.Error())
		return nil, err
	}

	return &View{Database: c.name, Table: grid, Chart: snap}, nil
}

// Chart redraws the chart alone.
func (c *Controller) Chart() (*chart.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	store, err := c.activeStore()
	if err != nil {
		return nil, err
	}
	return chart.Refresh(store, c.opts.Chart)
}

// ExportExcel writes every stock to the configured workbook, overwriting it,
// and returns the path written.
func (c *Controller) ExportExcel() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	store, err := c.activeStore()
	if err != nil {
		return "", err
	}

	stocks, err := store.QueryStocks()
	if err == nil {
		err = export.WriteXLSX(c.opts.ExportPath, stocks)
	}
	if err != nil {
		c.log.Error("excel export failed", zap.String("path", c.opts.ExportPath), zap.Error(err))
		c.notify.Error(titleError, err.Error())
		return "", err
	}

	c.log.Info("exported workbook", zap.String("path", c.opts.ExportPath), zap.Int("rows", len(stocks)))
	c.notify.Info(titleExported, msgExported)
	return c.opts.ExportPath, nil
}

// ExportCSV writes every stock to a CSV file at path and returns the row count.
func (c *Controller) ExportCSV(path string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	store, err := c.activeStore()
	if err != nil {
		return 0, err
	}

	stocks, err := store.QueryStocks()
	if err == nil {
		err = export.WriteCSV(path, stocks)
	}
	if err != nil {
		c.log.Error("csv export failed", zap.String("path", path), zap.Error(err))
		c.notify.Error(titleError, err.Error())
		return 0, err
	}

	c.log.Info("exported csv", zap.String("path", path), zap.Int("rows", len(stocks)))
	c.notify.Info(titleExported, fmt.Sprintf(fmtCSVExported, len(stocks), path))
	return len(stocks), nil
}

// CheckCSVHeader reports a file whose first row is not the stock column
// header, before the import touches the database.
func (c *Controller) CheckCSVHeader(path string) error {
	if err := export.ValidateHeader(path); err != nil {
		c.log.Warn("csv header rejected", zap.String("path", path), zap.Error(err))
		c.notify.Error(titleInvalid, err.Error())
		return fmt.Errorf("invalid CSV file: %w", err)
	}
	return nil
}

// ImportCSV appends every row of a CSV file to the active database in one
// transaction. A bad row aborts the whole import.
func (c *Controller) ImportCSV(path string, onProgress func(int)) (*View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	store, err := c.activeStore()
	if err != nil {
		return nil, err
	}

	stocks, err := export.ReadCSV(path)
	if err != nil {
		c.log.Warn("csv import rejected", zap.String("path", path), zap.Error(err))
		c.notify.Error(titleInvalid, err.Error())
		return nil, err
	}

	n, err := store.InsertStocks(stocks, onProgress)
	if err != nil {
		c.log.Error("csv import failed", zap.String("path", path), zap.Error(err))
		c.notify.Error(titleError, err.Error())
		return nil, err
	}

	c.log.Info("imported csv", zap.String("path", path), zap.Int("rows", n))
	c.notify.Info(titleImported, fmt.Sprintf(fmtCSVImported, n, path))
	return c.refresh(store)
}
