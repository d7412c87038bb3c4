package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"discograph/internal/config"
	"discograph/internal/logging"
	"discograph/internal/repo"
)

type commandContext struct {
	configFlag *string
	repoFlag   *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, repoFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		repoFlag:   repoFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.repoFlag != nil && strings.TrimSpace(*c.repoFlag) != "" {
			root, err := config.ExpandPath(strings.TrimSpace(*c.repoFlag))
			if err != nil {
				c.configErr = err
				return
			}
			cfg.Paths.RepoRoot = root
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) componentLogger(component string) *slog.Logger {
	logger, err := c.ensureLogger()
	if err != nil {
		return logging.NewComponentLogger(nil, component)
	}
	return logging.NewComponentLogger(logger, component)
}

// loadTree builds the repository tree from the configured root.
func (c *commandContext) loadTree(ctx context.Context) (*repo.Tree, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return repo.Load(ctx, cfg.Paths.RepoRoot, repo.Options{Workers: cfg.Compile.Workers})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
