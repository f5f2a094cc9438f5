package commands

import (
	"context"

	"github.com/livp123/mongolog/internal/config"
	"github.com/livp123/mongolog/internal/runtime"
	"github.com/livp123/mongolog/internal/utils/logger"
	"github.com/livp123/mongolog/pkg/appender"
	"github.com/livp123/mongolog/pkg/storage"
)

// loadConfig loads the effective configuration, defaults when the file is missing.
// loadConfig 加载生效配置，文件缺失时使用默认值。
func loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(config.GetConfigPath())
}

// opener returns the store opener selected by --file-store.
// opener 返回由 --file-store 选择的存储打开函数。
func opener() storage.Opener {
	if runtime.FileTarget != "" {
		return storage.OpenFile(runtime.FileTarget)
	}
	return storage.Open
}

// newAppender builds and activates an appender from cfg.
// newAppender 根据 cfg 构建并激活 appender。
func newAppender(ctx context.Context, cfg *config.Config) (*appender.Appender, error) {
	app, err := appender.New(cfg.ToAppender(),
		appender.WithOpener(opener()),
		appender.WithErrorHandler(appender.LoggerErrorHandler{Logger: logger.Get(ctx)}),
	)
	if err != nil {
		return nil, err
	}
	if err := app.Activate(ctx); err != nil {
		return nil, err
	}
	return app, nil
}
