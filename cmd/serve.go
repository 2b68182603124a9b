package cmd

import (
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/kerbaras/guya/pkg/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalogue over a local HTTP API",
	Long:  "Serve a read-only JSON API over the catalogue and the page resolver until interrupted",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c := mustController()
		defer closeController(c)

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = c.Config.ListenAddr
		}
		srv := api.NewServer(addr, c.Catalog, c.Prefs, c.Links, c.Log)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				cobra.CheckErr(err)
			}
		case <-cmd.Context().Done():
			c.Log.Infow("shutting down api")
			cobra.CheckErr(srv.Shutdown(10 * time.Second))
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from GUYA_LISTEN_ADDR)")
}
