package taskpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpawnReturnsValue(t *testing.T) {
	p := New(context.Background(), 4)
	f := Spawn(p, func(ctx context.Context) (int, error) {
		return 7, nil
	})
	v, err := f.Get()
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.NoError(t, p.Wait())
}

func TestWaitSurfacesFirstError(t *testing.T) {
	p := New(context.Background(), 2)
	boom := errors.New("boom")
	f := Spawn(p, func(ctx context.Context) (int, error) {
		return 0, boom
	})
	_, err := f.Get()
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, p.Wait(), boom)
}

func TestConcurrencyBoundedByConsumers(t *testing.T) {
	p := New(context.Background(), 2)
	var inFlight, maxInFlight int32
	start := make(chan struct{})
	futures := make([]*Future[struct{}], 0, 8)
	for i := 0; i < 8; i++ {
		futures = append(futures, Spawn(p, func(ctx context.Context) (struct{}, error) {
			<-start
			n := atomic.AddInt32(&inFlight, 1)
			for {
				cur := atomic.LoadInt32(&maxInFlight)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInFlight, cur, n) {
					break
				}
			}
			atomic.AddInt32(&inFlight, -1)
			return struct{}{}, nil
		}))
	}
	close(start)
	for _, f := range futures {
		_, err := f.Get()
		require.NoError(t, err)
	}
	require.NoError(t, p.Wait())
	require.LessOrEqual(t, maxInFlight, int32(2))
}

func TestCancellationStopsAdmittingWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := New(ctx, 1)
	blocked := Spawn(p, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	cancel()
	_, err := blocked.Get()
	require.Error(t, err)
}
