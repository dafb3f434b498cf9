package scanner

import (
	"strings"
	"time"
)

// DefaultKeyTimeout pausa máxima entre teclas de un mismo código.
const DefaultKeyTimeout = time.Second

// KeyEvent pulsación de tecla (solo key-down).
type KeyEvent struct {
	Code uint16
	Time time.Time
}

// Decoder convierte pulsaciones en códigos de barras completos.
// No es seguro para uso concurrente.
type Decoder struct {
	timeout time.Duration
	buf     strings.Builder
	last    time.Time
}

// NewDecoder crea un decodificador. timeout <= 0 usa DefaultKeyTimeout.
func NewDecoder(timeout time.Duration) *Decoder {
	if timeout <= 0 {
		timeout = DefaultKeyTimeout
	}
	return &Decoder{timeout: timeout}
}

// Feed procesa una tecla. Devuelve el código y true al recibir ENTER con el búfer no vacío.
// Una tecla que llega después del timeout descarta primero lo acumulado.
func (d *Decoder) Feed(ev KeyEvent) (string, bool) {
	if !d.last.IsZero() && ev.Time.Sub(d.last) > d.timeout {
		d.buf.Reset()
	}
	d.last = ev.Time

	if ev.Code == keyEnter || ev.Code == keyKPEnter {
		code := d.buf.String()
		d.buf.Reset()
		return code, code != ""
	}
	if r, ok := keymap[ev.Code]; ok {
		d.buf.WriteRune(r)
	}
	return "", false
}

// Pending devuelve lo acumulado sin emitir.
func (d *Decoder) Pending() string {
	return d.buf.String()
}
