package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/hello-app/internal/app"
	"github.com/woozymasta/hello-app/internal/config"
	"github.com/woozymasta/hello-app/internal/logger"
	"github.com/woozymasta/hello-app/internal/signals"
	"github.com/woozymasta/hello-app/internal/vars"
)

const defaultPort = "3000"

type options struct {
	Port       string `short:"p" long:"port" env:"PORT" default:"3000" description:"HTTP listen port"`
	Config     string `short:"c" long:"config" env:"APP_CONFIG" description:"Path to optional configuration file (YAML or JSON)"`
	WishesFile string `long:"wishes-file" env:"WISHES_FILE" description:"Serve this HTML file on /wishes instead of the embedded page"`
	Wishes     bool   `long:"wishes" env:"ENABLE_WISHES" description:"Serve the wishes page on /wishes"`
	DumpConfig bool   `long:"dump-config" description:"Print the effective configuration as YAML and exit"`
	Version    bool   `short:"v" long:"version" description:"Print build information and exit"`

	config.Instance `group:"Instance"`
	logger.Logger   `group:"Logging"`
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run blocks until ctx is canceled or a termination signal arrives.
func run(parent context.Context, args []string) error {
	var opts options

	if _, err := flags.ParseArgs(&opts, args); err != nil {
		// go-flags returns an error even for --help; in that case do not treat
		// it as a failure exit code.
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	if opts.Version {
		vars.Print(os.Stdout)
		return nil
	}

	opts.Logger.Setup()

	log.Debug().
		Str("config_path", opts.Config).
		Str("port", opts.Port).
		Msg("CLI options parsed")

	cfg, err := loadConfig(parent, &opts)
	if err != nil {
		return fmt.Errorf("hello-app: load config: %w", err)
	}

	if opts.DumpConfig {
		out, err := config.Dump(cfg)
		if err != nil {
			return fmt.Errorf("hello-app: dump config: %w", err)
		}
		_, err = os.Stdout.Write(out)
		return err
	}

	ctx, cancel := signals.WithSignalContext(parent)
	defer cancel()

	// PORT set to an empty string counts as unset.
	port := opts.Port
	if port == "" {
		port = defaultPort
	}

	a, err := app.New(cfg, opts.Instance, net.JoinHostPort("", port))
	if err != nil {
		return fmt.Errorf("hello-app: %w", err)
	}
	defer signals.GracefulShutdown(a, cfg.ShutdownTimeout.Std())

	if err := a.Run(ctx); err != nil {
		return fmt.Errorf("hello-app: %w", err)
	}

	return nil
}

// loadConfig reads the optional config file and applies CLI overrides.
// A wishes file given on the command line implies the wishes route.
func loadConfig(ctx context.Context, opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.Config != "" {
		cfg, err = config.Load(ctx, opts.Config)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		return nil, err
	}

	if opts.Wishes {
		cfg.Wishes.Enabled = true
	}
	if opts.WishesFile != "" {
		cfg.Wishes.Path = opts.WishesFile
		cfg.Wishes.Enabled = true
	}

	return cfg, nil
}
