package cmd

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/exoclust/logger"
	"github.com/yumyai/exoclust/pkg/handler"
	"github.com/yumyai/exoclust/pkg/middle"
)

// serveCmd exposes the cluster database over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cluster database as a read-only JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cdb, err := openDB()
		if err != nil {
			return err
		}
		if cdb == nil {
			return errors.New("no cluster database, set --db or EXOCLUST_DB")
		}
		defer cdb.Close()

		dbctx := &handler.DBContext{Cluster_DB: cdb}
		h := middle.Chain(handler.NewRouter(dbctx),
			middle.RequestIDMiddleware,
			middle.LoggingMiddleware(logger.Logger()),
		)

		srv := &http.Server{Addr: cfg.Addr, Handler: h}
		go func() {
			<-cmd.Context().Done()
			srv.Close()
		}()

		logger.Info("Server starting", zap.String("addr", cfg.Addr), zap.String("DB_LOC", cfg.DB))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Error starting server:", zap.String("error message", err.Error()))
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "0.0.0.0:8080", "listen address")

	RootCmd.AddCommand(serveCmd)
}
