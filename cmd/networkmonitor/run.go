package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tubenet/networkmonitor/internal/config"
	"github.com/tubenet/networkmonitor/internal/obslog"
	"github.com/tubenet/networkmonitor/monitor"
	"github.com/tubenet/networkmonitor/networklayout"
	"github.com/tubenet/networkmonitor/transportnetwork"
)

type runOptions struct {
	configFile string

	url        string
	endpoint   string
	port       string
	caCert     string
	layoutFile string
	logLevel   string
	login      string
	passcode   string
}

// RunCommand connects to the configured feed and monitors it until
// interrupted.
func RunCommand() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to the feed and apply passenger events to the network model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "path to a YAML config file")
	flags.StringVar(&opts.url, "url", "", "feed host")
	flags.StringVar(&opts.endpoint, "endpoint", "", "WebSocket upgrade path")
	flags.StringVar(&opts.port, "port", "", "feed port")
	flags.StringVar(&opts.caCert, "ca-cert", "", "PEM file containing the trusted CA certificate")
	flags.StringVar(&opts.layoutFile, "layout-file", "", "JSON file describing the network layout")
	flags.StringVar(&opts.logLevel, "log-level", "", "logrus level name")
	flags.StringVar(&opts.login, "login", "", "STOMP login")
	flags.StringVar(&opts.passcode, "passcode", "", "STOMP passcode")

	return cmd
}

func runMonitor(opts runOptions) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(&cfg, opts)
	if cfg.Host == "" {
		return errors.New("networkmonitor: --url (or config host) is required")
	}

	log := obslog.New(cfg.LogLevel)

	if cfg.LayoutFile == "" {
		return errors.New("networkmonitor: --layout-file is required")
	}
	data, err := os.ReadFile(cfg.LayoutFile)
	if err != nil {
		return errors.Wrap(err, "networkmonitor: read layout file")
	}
	doc, err := networklayout.Parse(data)
	if err != nil {
		return errors.Wrap(err, "networkmonitor: parse layout file")
	}

	net := transportnetwork.NewNetwork()
	if err := networklayout.Load(net, doc); err != nil {
		return errors.Wrap(err, "networkmonitor: load layout")
	}

	m := monitor.NewMonitor(cfg, net, log.WithField("component", "monitor"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("networkmonitor: shutting down")
		cancel()
	}()

	if err := m.Run(ctx); err != nil && ctx.Err() == nil {
		return errors.Wrap(err, "networkmonitor: monitor exited")
	}
	return nil
}

func applyFlagOverrides(cfg *config.Config, opts runOptions) {
	if opts.url != "" {
		cfg.Host = opts.url
	}
	if opts.endpoint != "" {
		cfg.Path = opts.endpoint
	}
	if opts.port != "" {
		cfg.Port = opts.port
	}
	if opts.caCert != "" {
		cfg.CACertPath = opts.caCert
	}
	if opts.layoutFile != "" {
		cfg.LayoutFile = opts.layoutFile
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.login != "" {
		cfg.Login = opts.login
	}
	if opts.passcode != "" {
		cfg.Passcode = opts.passcode
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 60 * time.Second
	}
}
