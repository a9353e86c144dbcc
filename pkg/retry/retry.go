package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Valores por defecto observados para conflictos de escritura en PostgreSQL.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 100 * time.Millisecond
)

// ErrExhausted se devuelve cuando todos los intentos fallaron por conflicto
// transitorio. Nunca se trata como éxito silencioso; envuelve la última causa.
var ErrExhausted = errors.New("reintentos agotados")

// Options parámetros del ejecutor. IsTransient clasifica el error de un intento:
// true → conflicto transitorio reintentable; false → se propaga de inmediato.
type Options struct {
	MaxAttempts int
	BaseDelay   time.Duration
	IsTransient func(error) bool
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = DefaultBaseDelay
	}
	return o
}

// Do ejecuta fn como unidad de trabajo reintentable: cada intento abre una
// transacción nueva dentro de fn, por lo que fn debe releer el estado actual en
// cada ejecución (idempotencia natural; los intentos abortados no dejan rastro).
//
// Backoff lineal: espera BaseDelay*intento entre intentos. Un error no
// transitorio se propaga sin reintentar; agotar los intentos devuelve
// ErrExhausted envolviendo la última causa.
func Do(ctx context.Context, opts Options, fn func(ctx context.Context) error) error {
	opts = opts.withDefaults()

	var last error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		last = fn(ctx)
		if last == nil {
			return nil
		}
		if opts.IsTransient == nil || !opts.IsTransient(last) {
			return last
		}
		if attempt == opts.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * opts.BaseDelay):
		}
	}
	return fmt.Errorf("%w tras %d intentos: %w", ErrExhausted, opts.MaxAttempts, last)
}
