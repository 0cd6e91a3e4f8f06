package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sweeply/sweep/internal/cli"
	"github.com/sweeply/sweep/internal/web"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [directories...]",
		Short: "Serve the JSON API for scanning and organizing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts, err := organizeOptions()
			if err != nil {
				return err
			}

			p, err := newPipeline(ctx, args, true)
			if err != nil {
				return err
			}
			defer p.close()

			server := web.NewServer(web.Config{
				Scanner:      p.scanner,
				Engine:       p.engine,
				Detector:     p.detector,
				Organizer:    p.organizer,
				Dirs:         p.dirs,
				OrganizeOpts: opts,
			})

			addr := net.JoinHostPort(viper.GetString("host"), viper.GetString("port"))
			fmt.Println(cli.FormatTitle("Serving on " + addr))
			return server.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().String("host", "127.0.0.1", "bind address")
	cmd.Flags().String("port", "8090", "listen port")
	_ = viper.BindPFlag("host", cmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("port", cmd.Flags().Lookup("port"))
	_ = viper.BindEnv("host", "HOST")
	_ = viper.BindEnv("port", "PORT")

	return cmd
}
