package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(viper.New()).Execute(); err != nil {
		log.Error().Err(err).Msg("select-mode failed")
		os.Exit(1)
	}
}
