package main

import (
	"github.com/spf13/cobra"

	"github.com/mateus/doepb-harvester/internal/config"
)

var historicoCmd = &cobra.Command{
	Use:   "historico",
	Short: "Crawl the full back catalog of gazette editions",
	Long:  "Paginates the portal's listing pages, resolving and mining every edition until the cutoff year is reached.",
	RunE:  runHistorico,
}

var (
	historicoConfigPath  string
	historicoOutputCSV   string
	historicoDownloadDir string
	historicoHeadless    bool
	historicoCutoffYear  int
)

func init() {
	historicoCmd.Flags().StringVar(&historicoConfigPath, "config", "", "Path to JSON config file")
	historicoCmd.Flags().StringVarP(&historicoOutputCSV, "out", "o", "", "Output CSV path")
	historicoCmd.Flags().StringVarP(&historicoDownloadDir, "dir", "d", "", "Directory for downloaded PDFs")
	historicoCmd.Flags().BoolVar(&historicoHeadless, "headless", true, "Run the browser headless")
	historicoCmd.Flags().IntVar(&historicoCutoffYear, "cutoff", 0, "Earliest publication year still collected (default 2019)")

	rootCmd.AddCommand(historicoCmd)
}

func runHistorico(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(historicoConfigPath, func(cfg *config.Config) {
		if historicoOutputCSV != "" {
			cfg.OutputCSV = historicoOutputCSV
		}
		if historicoDownloadDir != "" {
			cfg.DownloadDir = historicoDownloadDir
		}
		if historicoCutoffYear != 0 {
			cfg.CutoffYear = historicoCutoffYear
		}
		// Only an explicit flag beats the config file.
		if cmd.Flags().Changed("headless") {
			cfg.Headless = &historicoHeadless
		}
	})
	if err != nil {
		return err
	}
	return runCrawl(cfg, modeHistorical)
}
