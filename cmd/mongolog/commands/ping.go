package commands

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the configured collection is reachable",
	// Short: 检查配置的集合是否可达
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		app, err := newAppender(ctx, cfg)
		if err != nil {
			return err
		}
		if err := app.Close(ctx); err != nil {
			return err
		}

		target := net.JoinHostPort(cfg.Mongo.Host, strconv.Itoa(cfg.Mongo.Port))
		fmt.Fprintf(cmd.OutOrStdout(), "OK %s/%s.%s\n", target, cfg.Mongo.Database, cfg.Mongo.Collection)
		return nil
	},
}
