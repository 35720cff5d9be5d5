package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"livestock-records/internal/config"
	"livestock-records/internal/platform/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "livestock-records",
	Short: "Registro de ganado: etapas de vida, vacunación y ficha por animal",
	Long: `Servicio HTTP del registro de ganado.

Sin subcomando arranca el servidor (igual que "serve").
"report" calcula los resúmenes contra la fuente configurada y los imprime en JSON.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "archivo .env a cargar (por defecto .env si existe)")
	rootCmd.AddCommand(serveCmd, reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap carga la configuración y arma el logger base.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	base, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, base, nil
}
