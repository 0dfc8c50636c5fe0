package producer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"github.com/streamworks/order_pipeline/pkg/logger"
)

type fakeClient struct {
	sarama.Client

	refresh func() error
}

func (f fakeClient) RefreshMetadata(...string) error { return f.refresh() }

func TestHealthyReportsBrokerState(t *testing.T) {
	unreachable := errors.New("no available broker")

	tCases := []struct {
		name    string
		refresh func() error
		expErr  error
	}{
		{name: "brokers_up", refresh: func() error { return nil }, expErr: nil},
		{name: "brokers_down", refresh: func() error { return unreachable }, expErr: unreachable},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			p := &Producer{
				log:    logger.NewDiscardLogger(),
				client: fakeClient{refresh: tCase.refresh},
			}

			err := p.Healthy(context.Background())
			if tCase.expErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tCase.expErr)
		})
	}
}

func TestHealthyHonorsContextDeadline(t *testing.T) {
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	p := &Producer{
		log: logger.NewDiscardLogger(),
		client: fakeClient{refresh: func() error {
			<-block
			return nil
		}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, p.Healthy(ctx), context.DeadlineExceeded)
}
