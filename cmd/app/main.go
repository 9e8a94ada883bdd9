package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"backoffice/config"
	"backoffice/internal/command"
	"backoffice/internal/log"
	"backoffice/utils/path"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	_ "backoffice/cmd/docs"
)

var (
	// Version 編譯時注入：-ldflags "-X main.Version=..."
	Version  string
	envPath  string
	yamlPath string
	conf     *config.Configuration
)

// configFlags 掛在 root command 的 persistent flags，子命令也能使用
func configFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.StringVarP(&envPath, "env", "e", "", "Environment file relative to the project root, e.g. --env .env")
	fs.StringVarP(&yamlPath, "config", "c", "", "YAML file under conf/, e.g. --config config.yaml")
	return fs
}

func init() {
	cobra.OnInitialize(loadConfig)
}

func loadConfig() {
	if envPath != "" && yamlPath != "" {
		fmt.Println("同時指定 --env 與 --config，將以 --env 優先")
	}
	src := config.Source{
		EnvFile:  fromRoot(envPath),
		YAMLFile: fromRoot(yamlPath, "conf"),
	}
	if src.EnvFile == "" && src.YAMLFile == "" {
		fmt.Println("No configuration file specified, using environment variables only.")
	}
	loaded, err := config.Load(src, func(name string) {
		fmt.Println("config file changed:", name)
	})
	if err != nil {
		panic(err)
	}
	if loaded.App.Version == "" {
		loaded.App.Version = Version
	}
	conf = loaded
}

// fromRoot 相對路徑以專案根目錄（加上 dir）為基準
func fromRoot(file string, dir ...string) string {
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(append(append([]string{path.RootPath()}, dir...), file)...)
}

// @title        backoffice API
// @version      1.0
// @description  零售後台：角色存取控制與員工職位指派
// @host         localhost:3000
// @basePath     /

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
// @description 請在欄位輸入 "Bearer {token}"
func main() {
	rootCmd := &cobra.Command{
		Use:          "app",
		Short:        "Retail back-office API",
		SilenceUsage: true,
		RunE:         func(*cobra.Command, []string) error { return serve() },
	}
	rootCmd.PersistentFlags().AddFlagSet(configFlags())
	command.Register(rootCmd, wireCommands)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	logger, err := log.NewLogger(conf)
	if err != nil {
		return fmt.Errorf("init logger failed: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	app, cleanup, err := wireApp(conf, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("start app ...", zap.String("version", conf.App.Version))
	if err := app.Run(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown app ...", zap.String("signal", sig.String()))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.Stop(ctx)
}

// wireCommands 子命令用的依賴，與 HTTP 服務共用設定與 logger 建立方式
func wireCommands() (*command.Command, func(), error) {
	if conf == nil {
		return nil, nil, fmt.Errorf("config is nil")
	}
	logger, err := log.NewLogger(conf)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger failed: %w", err)
	}
	wired, cleanup, err := wireCommand(conf, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return wired, func() {
		cleanup()
		_ = logger.Sync()
	}, nil
}
