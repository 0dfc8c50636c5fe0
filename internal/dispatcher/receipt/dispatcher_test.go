package receipt

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/streamworks/order_pipeline/internal/lib/retry"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, string) {
	t.Helper()

	dir := t.TempDir()
	policy := retry.Policy{Attempts: 2, Backoff: time.Millisecond}

	return NewDispatcher(logger.NewDiscardLogger(), dir, policy), dir
}

func TestInvokeWritesReceipt(t *testing.T) {
	d, dir := newTestDispatcher(t)

	require.NoError(t, d.Invoke(context.Background(), "A1"))

	data, err := os.ReadFile(filepath.Join(dir, "A1.txt"))
	require.NoError(t, err)
	require.Equal(t, "Order receipt for A1", string(data))
}

func TestInvokeOverwritesOnDuplicate(t *testing.T) {
	d, dir := newTestDispatcher(t)

	require.NoError(t, d.Invoke(context.Background(), "A1"))
	require.NoError(t, d.Invoke(context.Background(), "A1"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, "A1.txt"))
	require.NoError(t, err)
	require.Equal(t, "Order receipt for A1", string(data))
}

func TestInvokeCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "receipts")
	policy := retry.Policy{Attempts: 2, Backoff: time.Millisecond}
	d := NewDispatcher(logger.NewDiscardLogger(), dir, policy)

	require.NoError(t, d.Invoke(context.Background(), "A2"))

	_, err := os.Stat(filepath.Join(dir, "A2.txt"))
	require.NoError(t, err)
}

func TestInvokeFailsWhenDirIsAFile(t *testing.T) {
	base := t.TempDir()
	blocked := filepath.Join(base, "receipts")
	require.NoError(t, os.WriteFile(blocked, []byte("not a dir"), 0o600))

	policy := retry.Policy{Attempts: 2, Backoff: time.Millisecond}
	d := NewDispatcher(logger.NewDiscardLogger(), blocked, policy)

	require.Error(t, d.Invoke(context.Background(), "A3"))
}
