package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httpadapter "github.com/mfeilner/unimach/internal/adapters/http"
	"github.com/mfeilner/unimach/internal/adapters/memory"
	redisstore "github.com/mfeilner/unimach/internal/adapters/redis"
	"github.com/mfeilner/unimach/internal/logging"
	"github.com/mfeilner/unimach/internal/metrics"
	"github.com/mfeilner/unimach/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the interpreter in server mode, exposing machine decoding, run
execution and the run history as a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		storeKind, _ := cmd.Flags().GetString("store")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		redisPassword, _ := cmd.Flags().GetString("redis-password")
		redisDB, _ := cmd.Flags().GetInt("redis-db")
		logJSON, _ := cmd.Flags().GetString("log-json")
		debug, _ := cmd.Flags().GetBool("debug")

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger := logging.New(level)
		if logJSON != "" {
			f, err := os.OpenFile(logJSON, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				fmt.Printf("Error opening log file: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			logger = logging.NewFanout(level, f)
		}

		store, closeStore, err := buildStore(storeKind, redisAddr, redisPassword, redisDB)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer closeStore()

		registry := prometheus.NewRegistry()

		api := httpadapter.NewHandler(store,
			httpadapter.WithLogger(logger),
			httpadapter.WithMetrics(metrics.New(registry)),
		)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		mux.Handle("/", api)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: mux,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Unimach Server on %s\n", srv.Addr)
			fmt.Printf("Storing runs in: %s\n", storeKind)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Unimach Server stopped gracefully")
		}
	},
}

func buildStore(kind, redisAddr, redisPassword string, redisDB int) (ports.RunStore, func(), error) {
	switch kind {
	case "memory":
		return memory.NewStore(), func() {}, nil
	case "redis":
		store := redisstore.New(redisAddr, redisPassword, redisDB)
		return store, func() { store.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q (want memory or redis)", kind)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("store", "memory", "Run store backend: memory or redis")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Redis address for --store redis")
	serveCmd.Flags().String("redis-password", "", "Redis password for --store redis")
	serveCmd.Flags().Int("redis-db", 0, "Redis database for --store redis")
	serveCmd.Flags().String("log-json", "", "Also write JSON logs to this file")
}
