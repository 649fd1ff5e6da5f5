package utils

import (
	"context"
	"errors"
	"time"
)

// Retry ejecuta fn hasta attempts veces, esperando delay entre intentos.
// Un error que coincide (errors.Is) con alguno de permanent se devuelve sin
// reintentar.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error, permanent ...error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		for _, p := range permanent {
			if errors.Is(err, p) {
				return err
			}
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-time.After(delay):
			// espera antes del siguiente intento
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// Ternary es un operador ternario genérico
func Ternary[T any](condition bool, ifTrue, ifFalse T) T {
	if condition {
		return ifTrue
	}
	return ifFalse
}
