package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"twquant/internal/config"
	"twquant/internal/gateway/fugle"
	"twquant/internal/logger"
	"twquant/internal/market"
)

var (
	cfgFile string
	cfg     config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "twquant",
		Short: "台股日线分析工具：指标、选股、扣抵与综合评分",
		Long: `twquant 以 Fugle 行情为数据源，对台股日 K 做技术分析：

  serve  启动 REST API 与图表服务
  quote  查询个股最新报价
  scan   按选股策略批量扫描
  score  个股综合买进评分（general / momentum / accumulation）

凭证经由 FUGLE_API_KEY 环境变量或配置文件提供。`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
			logger.SetLevel(cfg.Log.Level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.toml", "配置文件路径")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newQuoteCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newStrategiesCmd())
	rootCmd.AddCommand(newScoreCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newSource 按当前配置构造 Fugle 数据源。
func newSource() (market.Source, error) {
	return fugle.New(fugle.Config{
		APIKey:      cfg.Fugle.APIKey,
		BaseURL:     cfg.Fugle.BaseURL,
		HTTPTimeout: cfg.Fugle.Timeout(),
	})
}
