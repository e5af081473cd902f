package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"propertyfinder/internal/fixture"
	"propertyfinder/internal/logger"
)

func newServeFixtureCmd(opts *rootOptions) *cobra.Command {
	var (
		file   string
		status int
		addr   string
	)
	cmd := &cobra.Command{
		Use:   "serve-fixture",
		Short: "Serve a canned /search response for local runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log := logger.Console(os.Stderr, cfg.Log.Level)

			body, err := fixture.LoadFile(file)
			if err != nil {
				return err
			}
			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{
				Addr:              addr,
				Handler:           fixture.NewServer(body, status, fixture.WithLogger(log)),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx := cmd.Context()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			log.Info().Str("addr", addr).Str("file", file).Int("status", status).Msg("serving fixture")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrap(err, "serve fixture")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON body to return from /search")
	cmd.Flags().IntVar(&status, "status", http.StatusOK, "HTTP status to return")
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "listen address")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
