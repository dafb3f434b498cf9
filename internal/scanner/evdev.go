package scanner

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// DefaultSysRoot raíz de los dispositivos de entrada en sysfs.
const DefaultSysRoot = "/sys/class/input"

// inputEvent struct input_event de Linux en arquitecturas de 64 bits.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// KeySource fuente de pulsaciones. ReadKey bloquea hasta la siguiente tecla.
type KeySource interface {
	ReadKey() (KeyEvent, error)
	Close() error
}

// EvdevReader lee pulsaciones de /dev/input/eventN.
type EvdevReader struct {
	r       io.ReadCloser
	release func() error
}

// OpenEvdev abre el dispositivo indicado. Con grab toma acceso exclusivo (EVIOCGRAB):
// las lecturas dejan de llegar a la consola o a la ventana con foco. Close lo libera.
func OpenEvdev(path string, grab bool) (*EvdevReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	r := NewEvdevReader(f)
	if grab {
		if err := grabDevice(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("acceso exclusivo a %s: %w", path, err)
		}
		r.release = func() error { return ungrabDevice(f) }
	}
	return r, nil
}

// NewEvdevReader lee eventos desde r (un dispositivo o un flujo grabado).
func NewEvdevReader(r io.ReadCloser) *EvdevReader {
	return &EvdevReader{r: r}
}

// ReadKey devuelve la siguiente tecla pulsada; ignora liberaciones, repeticiones y eventos de sincronía.
func (e *EvdevReader) ReadKey() (KeyEvent, error) {
	for {
		var ev inputEvent
		if err := binary.Read(e.r, binary.LittleEndian, &ev); err != nil {
			return KeyEvent{}, err
		}
		if ev.Type != evKey || ev.Value != 1 {
			continue
		}
		return KeyEvent{
			Code: ev.Code,
			Time: time.Unix(ev.Sec, ev.Usec*int64(time.Microsecond)),
		}, nil
	}
}

// Close libera el acceso exclusivo (si se tomó) y cierra el dispositivo.
func (e *EvdevReader) Close() error {
	var errs []error
	if e.release != nil {
		errs = append(errs, e.release())
		e.release = nil
	}
	errs = append(errs, e.r.Close())
	return errors.Join(errs...)
}

// FindDevice busca en sysRoot un dispositivo eventN cuyo nombre contenga name (sin distinguir mayúsculas).
func FindDevice(sysRoot, name string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(sysRoot, "event*", "device", "name"))
	if err != nil {
		return "", err
	}
	want := strings.ToLower(name)
	for _, m := range matches {
		raw, err := os.ReadFile(m)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(strings.TrimSpace(string(raw))), want) {
			event := filepath.Base(filepath.Dir(filepath.Dir(m)))
			return filepath.Join("/dev/input", event), nil
		}
	}
	return "", fmt.Errorf("dispositivo %q no encontrado", name)
}

// WaitForDevice repite FindDevice cada interval hasta encontrarlo o cancelar ctx.
func WaitForDevice(ctx context.Context, sysRoot, name string, interval time.Duration, notify func(error, time.Duration)) (string, error) {
	opts := []backoff.RetryOption{
		backoff.WithBackOff(backoff.NewConstantBackOff(interval)),
		backoff.WithMaxElapsedTime(0),
	}
	if notify != nil {
		opts = append(opts, backoff.WithNotify(notify))
	}
	return backoff.Retry(ctx, func() (string, error) {
		return FindDevice(sysRoot, name)
	}, opts...)
}
