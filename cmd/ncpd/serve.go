package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/config"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/discovery"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/eventbus"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/registry"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/telemetry"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/wsserver"
)

// controlPath is the WebSocket endpoint the device document advertises in
// its ncp/v1.0 control entry.
const controlPath = "/x-nmos/ncp/v1.0"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the control protocol and discovery endpoints",
	Long: `Build the object tree from the device-identity config, start the
event fanout task, and listen for control-protocol WebSocket connections
and IS-04 discovery requests until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("config", "ncpd.yaml", "path to the device-identity YAML file")
	serveCmd.Flags().String("listen", "", "control-protocol listen address (overrides config)")
	serveCmd.Flags().String("discovery", "", "discovery listen address (overrides config)")
	serveCmd.Flags().String("nats", "", "optional NATS URL; republishes property-changed events to JetStream")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	tel, err := telemetry.New("ncpd")
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	logger := tel.Logger

	configPath, _ := cmd.Flags().GetString("config")
	loader, err := config.NewLoader(configPath, logger)
	if err != nil {
		return err
	}
	cfg, err := loader.Current()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("listen"); v != "" {
		cfg.Listen = v
	}
	if v, _ := cmd.Flags().GetString("discovery"); v != "" {
		cfg.Discovery = v
	}

	reg := registry.BuildDefault()
	bus := eventbus.New(logger)
	bus.SetTelemetry(tel)

	if natsURL, _ := cmd.Flags().GetString("nats"); natsURL != "" {
		nc, err := nats.Connect(natsURL)
		if err != nil {
			return fmt.Errorf("connecting to nats: %w", err)
		}
		defer nc.Close()
		js, err := nc.JetStream()
		if err != nil {
			return fmt.Errorf("opening jetstream: %w", err)
		}
		bus.SetJetStream(js)
		logger.Info("jetstream event republication enabled", slog.String("url", natsURL))
	}

	dev := buildTree(cfg, reg, bus.Enqueue)

	var ready atomic.Bool
	ws := wsserver.New(dev.root, ready.Load, bus, logger)
	ws.SetTelemetry(tel)

	node, devices := buildDocuments(cfg, dev)
	disc := discovery.NewServer(node, devices)

	controlMux := http.NewServeMux()
	controlMux.Handle(controlPath, ws)
	controlSrv := &http.Server{Addr: cfg.Listen, Handler: controlMux}
	discoverySrv := &http.Server{Addr: cfg.Discovery, Handler: disc.Router()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bus.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("control endpoint listening", slog.String("addr", cfg.Listen), slog.String("path", controlPath))
		if err := controlSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("control listener: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("discovery endpoint listening", slog.String("addr", cfg.Discovery))
		if err := discoverySrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("discovery listener: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := controlSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("control shutdown", slog.Any("error", err))
		}
		if err := discoverySrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("discovery shutdown", slog.Any("error", err))
		}
		return tel.Shutdown(shutdownCtx)
	})

	// Tree construction is synchronous above, so no session can observe
	// NotReady in practice; the flag still gates the window between listener
	// bind and this point.
	dev.deviceManager.MarkReady()
	ready.Store(true)
	logger.Info("device tree ready",
		slog.String("node", dev.nodeID),
		slog.String("device", dev.deviceID))

	loader.Watch(func(c config.Config) {
		if c.Device.DeviceName != "" {
			dev.deviceManager.SetProperty(model.NewElementId(3, 6), c.Device.DeviceName)
		}
	})

	return g.Wait()
}

// buildDocuments constructs the static IS-04 node and device documents the
// discovery surface serves for process lifetime.
func buildDocuments(cfg config.Config, dev *device) (discovery.NodeDocument, []discovery.DeviceDocument) {
	now := time.Now()
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}

	label := cfg.Device.DeviceName
	if label == "" {
		label = cfg.Device.ProductName
	}

	node := discovery.NodeDocument{
		Id:          dev.nodeID,
		Version:     discovery.Version(now),
		Label:       label,
		Description: cfg.Device.ProductName,
		Tags:        map[string][]string{},
		Href:        "http://" + joinHostListen(host, cfg.Discovery) + "/",
		Hostname:    host,
		Caps:        map[string]interface{}{},
		Services:    []discovery.ServiceEntry{},
		Clocks:      []discovery.ClockEntry{},
	}

	controlHref := "ws://" + joinHostListen(host, cfg.Listen) + controlPath
	deviceDoc := discovery.DeviceDocument{
		Id:          dev.deviceID,
		Version:     discovery.Version(now),
		Label:       label,
		Description: cfg.Device.ProductName,
		Tags:        map[string][]string{},
		Type:        "urn:x-nmos:device:generic",
		NodeId:      dev.nodeID,
		SenderIds:   []string{},
		ReceiverIds: []string{},
		Controls:    []discovery.ControlEntry{discovery.NewNcpControlEntry(controlHref)},
	}

	return node, []discovery.DeviceDocument{deviceDoc}
}

// joinHostListen turns a ":port"-style listen address into "host:port";
// addresses that already carry a host are used verbatim.
func joinHostListen(host, addr string) string {
	if strings.HasPrefix(addr, ":") {
		return host + addr
	}
	return addr
}
