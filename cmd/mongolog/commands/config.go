package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/livp123/mongolog/internal/config"
)

const maskedPassword = "******"

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	// Short: 管理配置文件
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	// Short: 写入默认配置文件
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetConfigPath()
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}

		mgr := config.NewConfigManager(path)
		mgr.UpdateConfig(config.Default())
		if err := mgr.SaveConfig(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	// Short: 打印生效的配置
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := config.NewConfigManager(config.GetConfigPath())
		if err := mgr.LoadConfig(); err != nil {
			return err
		}
		cfg := mgr.GetConfig()
		if cfg.Mongo.Password != "" {
			cfg.Mongo.Password = maskedPassword
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
