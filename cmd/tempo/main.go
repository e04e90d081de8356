package main

import (
	"fmt"
	"log"
	"os"

	"github.com/tempobot/tempo/bot"
	"github.com/tempobot/tempo/core/buildinfo"
	corecmd "github.com/tempobot/tempo/core/cmd"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "version" || os.Args[1] == "--version") {
		fmt.Printf("tempo %s (%s %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
		return
	}

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return bot.LoadConfig(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			appCfg, ok := cfg.(*bot.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", cfg)
			}
			return bot.Bootstrap(appCfg)
		},
	})
	if err != nil {
		log.Fatalf("tempo: %v", err)
	}
}
