package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/streamworks/order_pipeline/internal/lib/retry"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

// Dispatcher writes the receipt artifact for an order. Receipts are derived,
// regenerable data: duplicate invocations overwrite the same file and a
// failure after retries is logged, never escalated to the ingest caller.
type Dispatcher struct {
	log    logger.Logger
	dir    string
	policy retry.Policy
}

func NewDispatcher(log logger.Logger, dir string, policy retry.Policy) *Dispatcher {
	return &Dispatcher{
		log:    log,
		dir:    dir,
		policy: policy,
	}
}

// Invoke writes <dir>/<orderID>.txt. Write-to-temp plus rename keeps the
// artifact whole: readers see either the old content or the new, never a
// partial file.
func (d *Dispatcher) Invoke(ctx context.Context, orderID string) error {
	const op = "dispatcher.receipt.Invoke"

	err := d.policy.Do(ctx, func(_ context.Context) error {
		return d.write(orderID)
	})
	if err != nil {
		d.log.Error(op,
			logger.String("order_id", orderID),
			logger.String("error", err.Error()),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	d.log.Debug(op, logger.String("order_id", orderID))

	return nil
}

func (d *Dispatcher) write(orderID string) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create receipt dir: %w", err)
	}

	content := []byte("Order receipt for " + orderID)

	tmp, err := os.CreateTemp(d.dir, orderID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	target := filepath.Join(d.dir, orderID+".txt")
	if err = os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
