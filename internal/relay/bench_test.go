package relay

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
)

func benchmarkRoomBroadcast(b *testing.B, recipients int) {
	logger := zerolog.Nop()
	rel := New(&logger, 1)

	sender := rel.Connect()
	rel.HandleMessage(sender.ID, joinFrame("sender", "bench"))

	target := rel.Connect()
	rel.HandleMessage(target.ID, joinFrame("target", "bench"))
	drain(target.Events)

	// The rest never read; their one-slot buffers overflow and drop, which
	// is the production path for slow recipients.
	for i := 0; i < recipients-1; i++ {
		c := rel.Connect()
		rel.HandleMessage(c.ID, joinFrame(fmt.Sprintf("c%d", i), "bench"))
	}
	drain(target.Events)

	frame := noteUpdateFrame(1, "payload", "bench")

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rel.HandleMessage(sender.ID, frame)
		<-target.Events
	}
}

func BenchmarkRoomBroadcast_10(b *testing.B)  { benchmarkRoomBroadcast(b, 10) }
func BenchmarkRoomBroadcast_100(b *testing.B) { benchmarkRoomBroadcast(b, 100) }
func BenchmarkRoomBroadcast_500(b *testing.B) { benchmarkRoomBroadcast(b, 500) }
