package start

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/pprof"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/alpacahq/bizday/frontend"
	"github.com/alpacahq/bizday/metrics"
	"github.com/alpacahq/bizday/utils"
	"github.com/alpacahq/bizday/utils/log"
)

const (
	usage                 = "start"
	short                 = "Start a business day RPC server"
	long                  = "This command starts a JSON-RPC server answering business day queries"
	example               = "bizday start --config <path>"
	defaultConfigFilePath = "./bizday.yml"
	configDesc            = "set the path for the bizday YAML configuration file"
)

var (
	// Cmd is the start command.
	Cmd = &cobra.Command{
		Use:        usage,
		Short:      short,
		Long:       long,
		Aliases:    []string{"s"},
		SuggestFor: []string{"boot", "up", "serve"},
		Example:    example,
		RunE:       executeStart,
	}
	// configFilePath set flag for a path to the config file.
	configFilePath string
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	utils.InstanceConfig.StartTime = time.Now()
	Cmd.Flags().StringVarP(&configFilePath, "config", "c", defaultConfigFilePath, configDesc)
}

// executeStart implements the start command.
func executeStart(cmd *cobra.Command, _ []string) error {
	// Attempt to read config file.
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		return fmt.Errorf("failed to read configuration file error: %w", err)
	}

	// Don't output command usage if args(=only the filepath to bizday.yml at the moment) are correct
	cmd.SilenceUsage = true

	// Log config location.
	log.Info("using %v for configuration", configFilePath)

	// Attempt to set configuration.
	config, err := utils.ParseConfig(data)
	if err != nil {
		return fmt.Errorf("failed to parse configuration file error: %w", err)
	}
	utils.InstanceConfig = *config
	if !cmd.Flags().Changed("log-level") {
		log.SetLevel(config.LogLevel)
	}

	log.Info("initializing bizday...")
	start := time.Now()

	reg, err := config.LoadCalendars()
	if err != nil {
		return fmt.Errorf("failed to load calendars: %w", err)
	}
	metrics.CalendarsLoaded.Set(float64(reg.Len()))

	startupTime := time.Since(start)
	metrics.StartupTime.Set(startupTime.Seconds())
	log.Info("startup time: %s", startupTime)

	mux := http.NewServeMux()

	// Set rpc handler.
	log.Info("launching rpc server...")
	server, _ := frontend.NewServer(reg)
	mux.Handle("/rpc", server)

	// Set monitoring handler.
	log.Info("launching prometheus metrics server...")
	mux.Handle("/metrics", promhttp.Handler())

	// Start utility endpoints.
	frontend.NewUtilityAPIHandlers(config.StartTime, reg.Len).Register(mux)

	srv := &http.Server{Addr: config.ListenPort, Handler: mux}

	log.Info("enabling query access...")
	atomic.StoreUint32(&frontend.Queryable, 1)

	// Spawn a goroutine and listen for a signal.
	const defaultSignalChanLen = 10
	signalChan := make(chan os.Signal, defaultSignalChanLen)
	go func() {
		for s := range signalChan {
			switch s {
			case syscall.SIGUSR1:
				log.Info("dumping stack traces due to SIGUSR1 request")
				if err2 := pprof.Lookup("goroutine").WriteTo(os.Stdout, 1); err2 != nil {
					log.Error("failed to write goroutine pprof: %v", err2)
				}
			case syscall.SIGINT, syscall.SIGTERM:
				log.Info("initiating graceful shutdown due to '%v' request", s)
				atomic.StoreUint32(&frontend.Queryable, uint32(0))
				log.Info("waiting a grace period of %v to shutdown...", config.StopGracePeriod)
				time.Sleep(config.StopGracePeriod)
				if err2 := srv.Shutdown(context.Background()); err2 != nil {
					log.Error("failed to shutdown server: %v", err2)
				}
				return
			}
		}
	}()
	signal.Notify(signalChan, syscall.SIGUSR1, syscall.SIGINT, syscall.SIGTERM)

	// Serve.
	log.Info("launching tcp listener on %s...", config.ListenPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server - error: %w", err)
	}

	log.Info("exiting...")
	return nil
}
