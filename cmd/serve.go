package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the method engine as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		h := api.NewHandler(newSelector(), cfg.Hints, st.EventRepo(), logger)
		return api.Serve(ctx, cfg.Server.Addr, api.NewRouter(h, cfg.Server.AllowedOrigins), logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, 127.0.0.1:8080)")
}
