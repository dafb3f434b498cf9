package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/home-inventory/internal/scanner"
	"github.com/jhoicas/home-inventory/pkg/config"
	"github.com/jhoicas/home-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "scanner"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc := cfg.Scanner
	device := sc.DevicePath
	if device == "" {
		log.Info().Str("name", sc.DeviceName).Msg("buscando lector de códigos")
		device, err = scanner.WaitForDevice(ctx, scanner.DefaultSysRoot, sc.DeviceName, sc.SearchTimeout,
			func(err error, next time.Duration) {
				log.Warn().Err(err).Dur("retry_in", next).Msg("lector no encontrado")
			})
		if err != nil {
			log.Info().Msg("búsqueda cancelada")
			return
		}
	}

	src, err := scanner.OpenEvdev(device, sc.Grab)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir lector")
	}
	log.Info().Str("device", device).Str("api", sc.APIHost).Msg("escuchando lecturas")

	client := scanner.NewClient(scanner.ClientConfig{
		BaseURL:  sc.APIHost,
		Token:    sc.Token,
		Location: sc.Location,
	})
	l := scanner.NewListener(src, scanner.NewDecoder(sc.KeyTimeout), client, log.Component("listener"))
	if err := l.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("lectura del dispositivo")
	}
	log.Info().Msg("scanner detenido")
}
