package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts one search", func(t *testing.T) {
		clock := quartz.NewMock(t)
		collector := NewCollector(clock)

		collector.Start("mcts")
		for i := 0; i < 3; i++ {
			collector.AddEpisode()
			collector.AddNode()
		}
		collector.AddFullPlayout()
		clock.Advance(250 * time.Millisecond).MustWait(context.Background())

		require.Equal(t, SearchMetric{
			Strategy:     "mcts",
			Duration:     250 * time.Millisecond,
			Episodes:     3,
			FullPlayouts: 1,
			Nodes:        3,
		}, collector.Complete())
	})

	t.Run("start resets the counters", func(t *testing.T) {
		collector := NewCollector(quartz.NewMock(t))
		collector.Start("expectimax")
		collector.AddEpisode()

		collector.Start("maxn")
		metric := collector.Complete()
		require.Equal(t, "maxn", metric.Strategy)
		require.Zero(t, metric.Episodes)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		collector := NewDummyCollector()
		collector.Start("mcts")
		collector.AddEpisode()

		require.Equal(t, SearchMetric{}, collector.Complete())
	})
}
