package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jhoicas/wms-stock-engine/internal/domain"
)

// RetryPolicy reintento acotado de una unidad leer-modificar-escribir ante conflictos de versión.
// Solo se reintenta domain.ErrConcurrentModification; cualquier otro error se devuelve de inmediato.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultRetryPolicy 3 intentos con 500 ms entre cada uno.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: 500 * time.Millisecond}
}

// Do ejecuta op hasta MaxAttempts veces. Al agotar los intentos devuelve un error que
// envuelve domain.ErrConcurrentModification.
func (p RetryPolicy) Do(ctx context.Context, op func(attempt int) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Backoff), uint64(maxAttempts-1)),
		ctx,
	)

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := op(attempt)
		if err == nil || errors.Is(err, domain.ErrConcurrentModification) {
			return err
		}
		return backoff.Permanent(err)
	}, b)
	if err != nil && errors.Is(err, domain.ErrConcurrentModification) {
		return fmt.Errorf("%w (%d intentos)", err, attempt)
	}
	return err
}
