package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alantheprice/dropdown/pkg/webui"
)

var (
	serveFlags    widgetFlags
	serveHost     string
	servePort     int
	serveFindPort bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve dropdown sessions over WebSocket",
	Long: `Starts an HTTP server with a WebSocket endpoint at /ws and a health check at
/health. Each connection gets its own dropdown over the shared catalog.

Clients send {"type": ..., "data": ...} events:
  toggle_open, outside, select_all       no data
  query                                  search text
  scroll                                 offset in item-extent units
  scroll_to                              matching row index
  select                                 option key (string or integer)
  disabled                               true or false
  ping                                   answered with pong

Every event is answered with {"type": "render", "data": <descriptor>}; selection
changes are announced with {"type": "change"} first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := getLogger(cfg)

		set, err := serveFlags.catalog(cfg)
		if err != nil {
			return err
		}
		settings, err := serveFlags.settings(cmd, cfg)
		if err != nil {
			return err
		}

		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		if serveFindPort {
			port = webui.FindAvailablePort(port)
		}

		srv := webui.NewServer(set, webui.Options{
			Host:         host,
			Port:         port,
			PingInterval: time.Duration(cfg.Server.PingIntervalSec) * time.Second,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
			Settings:     settings,
			Logger:       logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.Start(ctx); err != nil {
			logger.LogError(err)
			return err
		}
		fmt.Printf("🌐 Serving %d options at ws://%s/ws (Ctrl+C to stop)\n", set.Len(), srv.Addr())

		<-ctx.Done()
		fmt.Println("\nShutting down...")
		return srv.Shutdown()
	},
}

func init() {
	serveFlags.register(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (default from config, localhost)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (default from config, 54321)")
	serveCmd.Flags().BoolVar(&serveFindPort, "find-port", false, "Use the next free port if the chosen one is taken")
	rootCmd.AddCommand(serveCmd)
}
