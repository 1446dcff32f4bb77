package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openkraft/rulegate/internal/adapters/outbound/config"
	"github.com/openkraft/rulegate/internal/adapters/outbound/coveragereport"
	"github.com/openkraft/rulegate/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/rulegate/internal/adapters/outbound/logger"
	"github.com/openkraft/rulegate/internal/adapters/outbound/manifest"
	"github.com/openkraft/rulegate/internal/adapters/outbound/scanner"
	"github.com/openkraft/rulegate/internal/adapters/outbound/toolchain"
	"github.com/openkraft/rulegate/internal/application"
)

// newServices wires the real outbound adapters. Logs and toolchain output go
// to the command's stderr so stdout stays machine readable.
func newServices(cmd *cobra.Command, projectPath string) *application.Services {
	cfgLoader := config.New()

	// The log level may come from the project config. A broken config is
	// reported by the validators themselves, so it is ignored here.
	var configured string
	if abs, err := filepath.Abs(projectPath); err == nil {
		if cfg, err := cfgLoader.Load(abs); err == nil {
			configured = cfg.LogLevel
		}
	}
	log := logger.NewWithOutput("rulegate", configured, cmd.ErrOrStderr())

	runner := toolchain.New(log)
	runner.Stream = cmd.ErrOrStderr()

	return application.NewServices(application.Adapters{
		Scanner:   scanner.New(),
		Config:    cfgLoader,
		Commits:   gitinfo.New(),
		Runner:    runner,
		Coverage:  coveragereport.New(),
		Shortcuts: manifest.New(),
		Env:       os.LookupEnv,
	}, log)
}
