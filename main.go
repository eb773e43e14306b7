package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/wcms19/yearbook/internal/config"
	"github.com/wcms19/yearbook/internal/host"
	"github.com/wcms19/yearbook/internal/logging"
	"github.com/wcms19/yearbook/internal/server"
	"github.com/wcms19/yearbook/internal/server/routes"
	"github.com/wcms19/yearbook/internal/version"
	"github.com/wcms19/yearbook/internal/yearbook"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg.Global)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	store, err := host.LoadContent(cfg.Global.ContentPath, cfg.Plugin.FieldsEnabled)
	if err != nil {
		fmt.Fprintf(stdErr, "加载内容失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["plugin"] = cfg.Plugin.Name
		fields["entities"] = len(store.Entities(""))
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	// 启动顺序：配置 → 内容 → 宿主 → 插件登记钩子 → 宿主触发 plugins_loaded/init → Fiber server。
	h, plugin, err := bootstrap(context.Background(), cfg, store, logger)
	if err != nil {
		fmt.Fprintf(stdErr, "插件引导失败: %v\n", err)
		return 1
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["listen_port"] = cfg.Global.ListenPort
	fields["plugin"] = plugin.Name()
	fields["bindings"] = plugin.Registry().Len()
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	if err := startHTTPServer(cfg, h, plugin, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

// bootstrap 构建宿主并把插件的钩子刷新进宿主分发器，随后完成宿主启动。
func bootstrap(ctx context.Context, cfg *config.Config, store *host.ContentStore, logger *logrus.Logger) (*host.Host, *yearbook.Plugin, error) {
	h, err := host.New(host.Options{Logger: logger, Content: store, Locale: cfg.Global.Locale})
	if err != nil {
		return nil, nil, err
	}

	plugin, err := yearbook.New(cfg.Plugin, yearbook.Deps{
		Logger:        logger,
		Terms:         h.Content,
		Fields:        h.Content,
		Schema:        h.Schema,
		FieldGroups:   h.Schema,
		TextDomains:   h.TextDomains,
		Translator:    h.TextDomains,
		Assets:        h.Assets,
		LanguagesPath: cfg.Global.LanguagesPath,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := plugin.Activate(ctx); err != nil {
		return nil, nil, err
	}

	plugin.Run(h.Dispatcher)
	if err := h.Boot(ctx); err != nil {
		return nil, nil, err
	}
	return h, plugin, nil
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("yearbook", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.toml，可被 YEARBOOK_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置与内容文件后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("YEARBOOK_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		path = "config.toml"
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}, nil
}

func startHTTPServer(cfg *config.Config, h *host.Host, plugin *yearbook.Plugin, logger *logrus.Logger) error {
	port := cfg.Global.ListenPort
	app, err := server.NewApp(server.AppOptions{
		Logger:         logger,
		Host:           h,
		RequestTimeout: cfg.Global.RequestTimeout.DurationValue(),
	})
	if err != nil {
		return err
	}
	routes.RegisterDiagnosticsRoutes(app, h, plugin)

	logger.WithFields(logrus.Fields{
		"action": "listen",
		"port":   port,
	}).Info("Fiber 服务启动")

	return app.Listen(fmt.Sprintf(":%d", port))
}
