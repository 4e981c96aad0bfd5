// cmd/servotel/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/tamzrod/servo-telemetry/internal/config"
	"github.com/tamzrod/servo-telemetry/internal/mqtt"
	"github.com/tamzrod/servo-telemetry/internal/poller"
	"github.com/tamzrod/servo-telemetry/internal/registry"
	"github.com/tamzrod/servo-telemetry/internal/router"
	"github.com/tamzrod/servo-telemetry/internal/status"
)

func main() {
	var (
		cfgPath string
		device  string
		rate    int
		names   string
		targets string
		verbose bool
	)

	flag.StringVarP(&cfgPath, "config", "c", "", "path to the YAML configuration")
	flag.StringVarP(&device, "device", "d", "", "serial device of the RS485 adapter")
	flag.IntVarP(&rate, "rate", "r", 0, "baud rate on the bus")
	flag.StringVarP(&names, "names", "n", "", "comma separated drive names")
	flag.StringVarP(&targets, "targets", "t", "", "station address per drive name, comma separated")
	flag.BoolVarP(&verbose, "verbose", "v", false, "log every bus exchange")
	flag.Parse()

	logger := newLogger(verbose)

	cfg, err := loadConfig(cfgPath, device, rate, names, targets, verbose)
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration rejected")
	}

	if err := run(logger, cfg); err != nil {
		logger.Fatal().Err(err).Msg("telemetry service failed")
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", "servotel").Logger()
}

// loadConfig layers file, environment and flags, most specific last.
func loadConfig(path, device string, rate int, names, targets string, verbose bool) (config.Config, error) {
	cfg := config.Default()

	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	}

	if err := config.ApplyEnv(&cfg); err != nil {
		return config.Config{}, err
	}

	if device != "" {
		cfg.Telemetry.Serial.Device = device
	}
	if rate != 0 {
		cfg.Telemetry.Serial.BaudRate = rate
	}
	if verbose {
		cfg.Telemetry.Serial.Verbose = true
	}
	if names != "" {
		drives, err := drivesFromFlags(names, targets)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Telemetry.Drives = drives
	}

	if err := config.Validate(&cfg); err != nil {
		return config.Config{}, err
	}
	config.Normalize(&cfg)

	return cfg, nil
}

// drivesFromFlags builds the drive list from -n/-t. The lists must pair
// up one to one.
func drivesFromFlags(names, targets string) ([]config.DriveConfig, error) {
	nameList := splitList(names)
	targetList := splitList(targets)
	if len(nameList) != len(targetList) {
		return nil, fmt.Errorf("%d drive names for %d targets", len(nameList), len(targetList))
	}

	drives := make([]config.DriveConfig, 0, len(nameList))
	for i, name := range nameList {
		station, err := strconv.Atoi(targetList[i])
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", targetList[i], err)
		}
		drives = append(drives, config.DriveConfig{Name: name, Station: station})
	}
	return drives, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func run(logger zerolog.Logger, cfg config.Config) error {
	logger.Info().
		Str("device", cfg.Telemetry.Serial.Device).
		Int("baud_rate", cfg.Telemetry.Serial.BaudRate).
		Str("framing", "8E1").
		Int("drives", len(cfg.Telemetry.Drives)).
		Dur("interval", cfg.Telemetry.Poll.Interval()).
		Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tbl := registry.New()
	board := status.NewBoard(3 * cfg.Telemetry.Poll.Interval())

	// --------------------
	// Alarm reporters
	// --------------------

	reporters := poller.Reporters{poller.LogReporter{Log: logger}}

	var pub *mqtt.Publisher
	if mc := cfg.Telemetry.MQTT; mc != nil {
		var err error
		pub, err = mqtt.Connect(mqtt.Config{
			Broker:      mc.Broker,
			ClientID:    mc.ClientID,
			Username:    mc.Username,
			Password:    mc.Password,
			TopicPrefix: mc.TopicPrefix,
			QoS:         byte(mc.QoS),
			KeepAlive:   time.Duration(mc.KeepAliveSec) * time.Second,
		}, logger)
		if err != nil {
			return err
		}
		defer pub.Close()
		reporters = append(reporters, pub)
	}

	// --------------------
	// Build per-drive pollers
	// --------------------

	pollers := make([]*poller.Poller, 0, len(cfg.Telemetry.Drives))
	for _, d := range cfg.Telemetry.Drives {
		if d.Disabled {
			board.RegisterDisabled(d.Name)
			logger.Info().Str("drive", d.Name).Msg("drive disabled")
			continue
		}

		p, closeSession, err := poller.Build(d, cfg.Telemetry.Serial, tbl, reporters, logger)
		if err != nil {
			return fmt.Errorf("drive %s: %w", d.Name, err)
		}
		defer closeSession()

		board.Register(d.Name)
		pollers = append(pollers, p)
		logger.Info().Str("drive", d.Name).Int("station", d.Station).Msg("drive ready")
	}

	runner, err := poller.NewRunner(pollers, cfg.Telemetry.Poll.Interval(), logger)
	if err != nil {
		return err
	}

	// --------------------
	// Optional status API
	// --------------------

	if hc := cfg.Telemetry.HTTP; hc != nil {
		go func() {
			if err := router.Serve(ctx, logger, hc.Listen, router.New(logger, tbl, board)); err != nil {
				logger.Error().Err(err).Msg("http server stopped")
			}
		}()
	}

	// --------------------
	// Poll loop + consumer
	// --------------------

	out := make(chan poller.Update)
	go consume(ctx, logger, out, board, pub)

	runner.Run(ctx, out)

	logger.Info().Msg("stopped")
	return nil
}

// consume drains poll updates into the status board and the optional
// MQTT mirror.
func consume(ctx context.Context, logger zerolog.Logger, out <-chan poller.Update, board *status.Board, pub *mqtt.Publisher) {
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-out:
			board.Update(u.Drive, u.Telemetry.AlarmActive(), u.Telemetry.ErrorCode, u.Failures)

			logger.Debug().
				Str("drive", u.Drive).
				Float64("feedback_speed", u.Telemetry.FeedbackSpeed).
				Float64("feedback_torque", u.Telemetry.FeedbackTorque).
				Uint32("failures", u.Failures).
				Msg("poll update")

			if pub != nil {
				if err := pub.PublishUpdate(u); err != nil {
					logger.Warn().Err(err).Str("drive", u.Drive).Msg("telemetry publish failed")
				}
			}
		}
	}
}
