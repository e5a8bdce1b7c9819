package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"resptx/internal/config"
	"resptx/internal/core"
	"resptx/internal/core/engine"
	"resptx/internal/core/processors"
	"resptx/internal/core/providers"
	"resptx/internal/pkg/logger"
	"resptx/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the transforming proxy",
	Long:  `Start the resptx HTTP proxy and apply the configured rules to every upstream response.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}

		// 初始化全局 logger
		globalLogger, err := logger.NewWithRotation(settings.Log.Level, &logger.RotationConfig{
			Filename:   settings.Log.File,
			MaxSize:    settings.Log.MaxSizeMB,
			MaxBackups: settings.Log.MaxBackups,
			MaxAge:     settings.Log.MaxAgeDays,
			Compress:   settings.Log.Compress,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer globalLogger.Sync()

		eng := engine.NewEngine(globalLogger.Named("engine"))

		// An invalid rule set at startup leaves the proxy passing responses through
		// until a valid one is written.
		_, _ = eng.LoadRaw(settings.Transform)

		if config.Watch(func(s *engine.Settings, err error) {
			if err != nil {
				globalLogger.Error("failed to reload configuration", zap.Error(err))
				return
			}
			_, _ = eng.LoadRaw(s.Transform)
		}) {
			globalLogger.Info("watching configuration file", zap.String("file", viper.ConfigFileUsed()))
		}

		pipeline := core.NewPipeline()
		pipeline.AddProcessor(processors.NewResponseTransformer(eng))
		pipeline.AddProcessor(processors.NewAccessLogger())
		for _, proc := range pipeline.Processors() {
			globalLogger.Debug("processor registered", zap.String("name", proc.Name()), zap.Int("priority", proc.Priority()))
		}

		provider, err := providers.NewUpstreamProvider(settings.Upstream, pipeline, logger.NewLogger(globalLogger).Named("proxy"))
		if err != nil {
			return err
		}

		addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
		srv := server.NewHTTPServer(addr, eng, provider, globalLogger)
		return srv.Start()
	},
}

func SetupServeCmd() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", engine.DefaultPort, "Server port")
	serveCmd.Flags().StringP("host", "H", engine.DefaultHost, "Server host")
	serveCmd.Flags().String("upstream", "", "Upstream base URL (overrides upstream.base_url)")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("upstream.base_url", serveCmd.Flags().Lookup("upstream"))
}
