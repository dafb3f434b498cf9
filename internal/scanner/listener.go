package scanner

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/jhoicas/home-inventory/internal/application/dto"
)

// StockInSender destino de los códigos leídos.
type StockInSender interface {
	StockIn(ctx context.Context, barcode string) (*dto.StockInResponse, error)
}

// Listener une lector, decodificador y cliente.
type Listener struct {
	src     KeySource
	decoder *Decoder
	sender  StockInSender
	log     zerolog.Logger
}

func NewListener(src KeySource, decoder *Decoder, sender StockInSender, log zerolog.Logger) *Listener {
	return &Listener{src: src, decoder: decoder, sender: sender, log: log}
}

// Run lee teclas hasta que ctx se cancela o la fuente falla. Cierra la fuente al salir.
// Un fallo al enviar un código se registra y no detiene la escucha.
func (l *Listener) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = l.src.Close()
	}()

	for {
		ev, err := l.src.ReadKey()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		code, ok := l.decoder.Feed(ev)
		if !ok {
			continue
		}
		res, err := l.sender.StockIn(ctx, code)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			l.log.Error().Err(err).Str("barcode", code).Msg("no se pudo registrar la lectura")
			continue
		}
		l.log.Info().
			Str("barcode", code).
			Str("item_id", res.ItemID).
			Int64("quantity", res.Quantity).
			Bool("is_new", res.IsNew).
			Msg("lectura registrada")
	}
}
