package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/livp123/mongolog/internal/utils/logger"
	"github.com/livp123/mongolog/pkg/mongocore"
)

var (
	sendLevel  string
	sendLogger string
	sendError  string
	sendCause  string
)

var sendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Log one message to the console and MongoDB",
	// Short: 将一条消息记录到控制台和 MongoDB
	Long: `Log one message through a zap logger that writes to the console and the
configured collection. --error attaches an error, --cause wraps it around an inner error.
通过同时写入控制台和集合的 zap logger 记录一条消息。--error 附加错误，--cause 为其添加内部错误。`,
	Example: `  mongolog send "disk almost full" --level warn --logger Storage
  mongolog send "I'm sorry" --level error --error "Something wrong happened" --cause "I'm the inner"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := zapcore.ParseLevel(sendLevel)
		if err != nil || level > zapcore.ErrorLevel {
			return fmt.Errorf("invalid level %q: use debug, info, warn or error", sendLevel)
		}
		if sendCause != "" && sendError == "" {
			return errors.New("--cause requires --error")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		app, err := newAppender(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = app.Close(ctx) }()

		core := zapcore.NewTee(
			logger.NewCore(cfg.Logging),
			mongocore.New(app, zapcore.DebugLevel),
		)
		log := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
		if sendLogger != "" {
			log = log.Named(sendLogger)
		}

		var fields []zap.Field
		if err := buildError(sendError, sendCause); err != nil {
			fields = append(fields, zap.Error(err))
		}
		log.Log(level, strings.Join(args, " "), fields...)
		_ = log.Sync()

		stats := app.Stats()
		if stats.Appended == 0 {
			return fmt.Errorf("event not delivered (state=%s, filtered=%d)", stats.State, stats.Filtered)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Delivered to %s\n", cfg.Mongo.Collection)
		return nil
	},
}

// buildError wraps cause inside msg, or returns nil when msg is empty.
// buildError 将 cause 包装在 msg 中，msg 为空时返回 nil。
func buildError(msg, cause string) error {
	switch {
	case msg == "":
		return nil
	case cause == "":
		return errors.New(msg)
	default:
		return fmt.Errorf("%s: %w", msg, errors.New(cause))
	}
}

func init() {
	sendCmd.Flags().StringVarP(&sendLevel, "level", "l", "info", "Level: debug, info, warn, error")
	sendCmd.Flags().StringVar(&sendLogger, "logger", "", "Logger name")
	sendCmd.Flags().StringVar(&sendError, "error", "", "Attach an error with this message")
	sendCmd.Flags().StringVar(&sendCause, "cause", "", "Inner error wrapped by --error")
}
