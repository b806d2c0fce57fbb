package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"baldr/internal/api"
	"baldr/internal/catalog"
	"baldr/internal/config"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog database over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.SQLiteStore) error {
				if bind == "" {
					bind = cfg.Catalog.APIBind
				}
				gin.SetMode(gin.ReleaseMode)

				server, err := api.NewServer(bind, store, ctx.loggerValue())
				if err != nil {
					return err
				}

				runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				if err := server.Start(runCtx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Catalog API listening on http://%s\n", server.Addr())

				<-runCtx.Done()
				server.Stop()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (defaults to catalog.api_bind)")
	return cmd
}
