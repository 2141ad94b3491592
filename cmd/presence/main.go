package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"digital-presence/platform-backend/internal/config"
	"digital-presence/platform-backend/internal/governance"
	"digital-presence/platform-backend/internal/logging"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// Exit codes
const (
	exitUsage    = 1
	exitNotFound = 2
)

// app holds what every command needs once flags are parsed.
type app struct {
	configPath  string
	catalogPath string

	cfg     *config.Config
	logger  *zap.Logger
	catalog *governance.Catalog
}

func main() {
	root, a := newRootCmd()
	err := root.Execute()
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUsage
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:           "presence",
		Short:         "Wizard progress and governance rules for Digital Presence",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to a JSON config file")
	pf.StringVar(&a.catalogPath, "catalog", "", "Path to a governance catalog YAML file (overrides config)")

	root.AddCommand(
		a.progressCmd(),
		a.actionsCmd(),
		a.dashboardCmd(),
		a.markActionCmd(),
		a.transitionsCmd(),
		a.governanceCmd(),
	)
	return root, a
}

func (a *app) init() error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return codeError(exitUsage, "%s", err)
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return codeError(exitUsage, "%s", err)
	}
	a.logger = logger

	path := a.catalogPath
	if path == "" {
		path = cfg.Catalog.Path
	}
	if path == "" {
		a.catalog = governance.Default()
		return nil
	}

	catalog, err := governance.LoadFile(path)
	if err != nil {
		logger.Error("Failed to load governance catalog", zap.String("path", path), zap.Error(err))
		return codeError(exitUsage, "%s", err)
	}
	logger.Debug("Governance catalog loaded",
		zap.String("path", path),
		zap.Int("roles", len(catalog.Roles())),
		zap.Int("levels", len(catalog.Levels())))
	a.catalog = catalog
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
