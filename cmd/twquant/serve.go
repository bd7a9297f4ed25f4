package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"twquant/internal/logger"
	"twquant/internal/store"
	transport "twquant/internal/transport/http"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 REST API 与图表服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := newSource()
			if err != nil {
				return err
			}

			listen := cfg.Server.Addr
			if addr != "" {
				listen = addr
			}

			server, err := transport.NewServer(transport.Config{
				Addr:   listen,
				Source: src,
				Store:  store.NewMemoryBarStore(),
				Scan:   cfg.Scan,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Infof("HTTP 服务启动于 %s", listen)
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return server.Start(ctx)
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "监听地址（默认取配置文件 server.addr）")
	return cmd
}
