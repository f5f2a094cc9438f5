package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/livp123/mongolog/internal/config"
	"github.com/livp123/mongolog/internal/runtime"
	"github.com/livp123/mongolog/internal/utils/logger"
)

var RootCmd = &cobra.Command{
	Use:   "mongolog",
	Short: "Deliver log events to MongoDB",
	// Short: 将日志事件投递到 MongoDB
	Long: `mongolog writes log events as documents into a MongoDB collection.
Delivery is best effort: after a failed insert events are dropped for a
cool-down window, then a single event probes the database again.
mongolog 将日志事件作为文档写入 MongoDB 集合。
投递是尽力而为的：插入失败后在冷却窗口内丢弃事件，之后由单个事件再次探测数据库。`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load configuration to get logging settings
		// 加载配置以获取日志设置
		cfg, err := config.LoadOrDefault(config.GetConfigPath())
		if err != nil {
			// If config fails to load, use default logging config (console only)
			// 如果加载配置失败，使用默认日志配置（仅控制台）
			logger.Init(logger.LoggingConfig{Level: "info"})
		} else {
			logger.Init(cfg.Logging)
		}

		// Inject logger into context
		// 将 Logger 注入 Context
		ctx := logger.WithContext(cmd.Context(), logger.Get(nil))
		cmd.SetContext(ctx)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	// Config file path
	// 配置文件路径
	RootCmd.PersistentFlags().StringVarP(&runtime.ConfigPath, "config", "c", "", fmt.Sprintf("Path to configuration file (default: %s)", config.DefaultConfigPath))

	// Write JSON lines into a directory instead of MongoDB
	// 写入目录中的 JSON 行文件而不是 MongoDB
	RootCmd.PersistentFlags().StringVar(&runtime.FileTarget, "file-store", "", "Deliver to <dir>/<collection>.jsonl instead of MongoDB")

	RootCmd.AddCommand(sendCmd)
	RootCmd.AddCommand(pingCmd)
	RootCmd.AddCommand(shipCmd)
	RootCmd.AddCommand(configCmd)
	RootCmd.AddCommand(versionCmd)

	RootCmd.CompletionOptions.DisableDescriptions = true
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
