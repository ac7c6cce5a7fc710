package streaming

import (
	"context"
	"net/http"

	"github.com/getmockd/mockd-openai/pkg/schema"
	"github.com/getmockd/mockd-openai/pkg/sse"
)

// Write drives stream into w as server-sent events and terminates it with
// the done event. The next event is pulled only after the previous frame has
// been written, so a slow reader holds the simulator back. Write returns
// early with the context error or the first write error.
func Write(ctx context.Context, w http.ResponseWriter, status int, stream EventStream) error {
	sw, err := sse.NewWriter(w, status)
	if err != nil {
		return err
	}
	defer sw.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, ok := stream.Next()
		if !ok {
			break
		}
		if err := sw.Send(&sse.Event{Type: ev.Event, Data: ev.Data}); err != nil {
			return err
		}
	}

	return sw.Send(&sse.Event{Type: schema.EventDone, Data: schema.StreamDoneData})
}
