package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/naka-gawa/github-repos/internal/config"
	"github.com/naka-gawa/github-repos/internal/domain"
	"github.com/naka-gawa/github-repos/internal/gateway"
	"github.com/naka-gawa/github-repos/internal/platform"
	"github.com/naka-gawa/github-repos/internal/prefs"
	"github.com/naka-gawa/github-repos/internal/presenter"
	"github.com/naka-gawa/github-repos/internal/usecase"
	"github.com/spf13/cobra"
)

// app is the screen: the controller plus everything it renders to.
type app struct {
	logger     *log.Logger
	controller *usecase.Controller
	list       *presenter.List
	toast      *presenter.Toast
}

// newLogger discards everything unless --verbose is set.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(cmd.ErrOrStderr())
	}
	return logger
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	return config.Load(config.Options{ConfigFile: configFile, Flags: cmd.Flags()})
}

// newApp injects dependencies. interactive adds the loading indicator and
// the username prefill line that the one-shot command has no use for.
func newApp(cmd *cobra.Command, interactive bool) (*app, error) {
	logger := newLogger(cmd)
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	format, err := presenter.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	githubGateway, err := gateway.NewGitHubGateway(cfg.BaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	store, err := prefs.NewStore(cfg.StateDir, logger)
	if err != nil {
		return nil, err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	toast := presenter.NewToast(errOut)
	list := presenter.NewList(out, format, cfg.Summary)
	browser := platform.NewBrowser(logger)
	sharer := platform.NewSharer(out, cfg.QR, logger)

	list.OnItemActivated = func(repo domain.Repository) {
		if err := browser.Open(repo.HTMLURL); err != nil {
			toast.Notify(fmt.Sprintf("Can't open %s: %v", repo.HTMLURL, err))
		}
	}
	list.OnShareActivated = func(repo domain.Repository) {
		if err := sharer.Share(repo.HTMLURL); err != nil {
			toast.Notify(fmt.Sprintf("Can't share %s: %v", repo.HTMLURL, err))
		}
	}

	controller := usecase.NewController(githubGateway, store, toast, logger)
	controller.OnChange(func(s domain.Session) {
		switch s.State {
		case domain.StateIdle:
			if interactive && s.Username != "" {
				fmt.Fprintf(errOut, "username: %s\n", s.Username)
			}
		case domain.StateLoading:
			if interactive {
				fmt.Fprintf(errOut, "Loading repositories for %q...\n", s.Username)
			}
		case domain.StateShown:
			if err := list.Render(s.Repositories); err != nil {
				toast.Notify(fmt.Sprintf("Can't render repositories: %v", err))
			}
		}
	})

	return &app{
		logger:     logger,
		controller: controller,
		list:       list,
		toast:      toast,
	}, nil
}
