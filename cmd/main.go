package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tmms/config"
	"tmms/database"
	"tmms/mailer"
	"tmms/payments"
	"tmms/routes"
	"tmms/storage"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}

	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("MongoDB connection failed")
	}
	defer database.Disconnect()

	uploads, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("upload directory unavailable")
	}

	mail := mailer.New(cfg)
	gateway := payments.NewGateway(cfg)

	r := gin.Default()
	r.SetTrustedProxies(nil)
	routes.Register(r, cfg, mail, gateway, uploads)

	log.Info().Str("port", cfg.Port).Msg("TMMS server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
