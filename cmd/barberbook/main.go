package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"barberbook/internal/capture"
	"barberbook/internal/config"
	appLog "barberbook/internal/log"
	"barberbook/internal/metrics"
	"barberbook/internal/session"
	"barberbook/internal/web"
)

const version = "0.1.0"

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	listen     string
	debug      bool
	snapshot   string
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI --listen overrides config file listen if provided.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}

	level := appLog.ParseLevel(conf.Log.Level)
	if flags.debug {
		level = appLog.LevelDebug
	}
	appLog.Setup(level, conf.Log.Format)

	appLog.Info("barberbook starting", "version", version)
	appLog.Info("effective config",
		"listen", conf.Listen,
		"timezone", conf.Timezone,
		"week_start", conf.WeekStart,
		"closed_weekdays", conf.ClosedWeekdays,
		"opening", conf.Opening,
		"slot_minutes", conf.SlotMinutes,
		"slot_count", conf.SlotCount,
		"submit_delay_ms", conf.SubmitDelayMs,
		"session_ttl_minutes", conf.SessionTTLMinutes,
		"sweep", conf.Sweep,
		"barber_count", len(conf.Barbers),
		"snapshot", flags.snapshot,
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	if err := run(ctx, cancel, conf, flags); err != nil {
		appLog.Error("barberbook stopped with error", err)
		os.Exit(1)
	}
	appLog.Info("barberbook exiting")
}

func run(ctx context.Context, cancel context.CancelFunc, conf *config.Config, flags flagConfig) error {
	factory, err := web.FlowFactory(conf, nil)
	if err != nil {
		return err
	}

	m := metrics.NewBookingMetrics(prometheus.DefaultRegisterer)
	store := session.NewStore(factory, conf.SessionTTL(), session.WithMetrics(m))
	if err := store.StartSweeper(conf.Sweep); err != nil {
		return err
	}
	defer func() {
		stopCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		store.StopSweeper(stopCtx)
	}()

	srv := web.NewServer(conf, web.Options{
		Sessions: store,
		Metrics:  m,
		Debug:    flags.debug,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	if flags.snapshot != "" {
		snapErr := takeSnapshot(ctx, conf, flags.snapshot)
		cancel()
		if err := <-errCh; err != nil {
			return err
		}
		return snapErr
	}

	return <-errCh
}

// takeSnapshot captures the booking page once the server is answering.
func takeSnapshot(ctx context.Context, conf *config.Config, out string) error {
	if err := waitHealthy(ctx, "http://"+conf.Listen+"/health"); err != nil {
		return err
	}
	appLog.Info("capturing booking page", "output", out)
	err := capture.BookingPagePNG(ctx, capture.Options{
		URL:        "http://" + conf.Listen + "/",
		OutputPath: out,
		Headers:    snapshotHeaders(conf),
	})
	if err != nil {
		return err
	}
	appLog.Info("snapshot written", "output", out)
	return nil
}

// snapshotHeaders authenticates the headless browser when basic auth guards
// the page.
func snapshotHeaders(conf *config.Config) map[string]string {
	ba := conf.BasicAuth
	if ba == nil || ba.Username == "" || ba.Password == "" {
		return nil
	}
	return map[string]string{"Authorization": capture.BasicAuthHeader(ba.Username, ba.Password)}
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/barberbook/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")
	flag.StringVar(&cfg.snapshot, "snapshot", "", "Capture the booking page to this PNG path and exit")

	flag.Parse()

	return cfg
}
