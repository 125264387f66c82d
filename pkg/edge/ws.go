package edge

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/ksysoev/traceid/pkg/traceid"
)

const wsReadLimit = 64 * 1024

// handleWS upgrades the connection, sends the trace id as the first text message and echoes
// every message received afterwards.
func (s *HTTPServer) handleWS(w http.ResponseWriter, r *http.Request, id traceid.TraceID[string]) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to upgrade to websocket", slog.Any("error", err))
		return
	}

	conn.SetReadLimit(wsReadLimit)

	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "") }()

	ctx := r.Context()

	if err := conn.Write(ctx, websocket.MessageText, []byte(id.String())); err != nil {
		slog.DebugContext(ctx, "failed to send trace id over websocket", slog.Any("error", err))
		return
	}

	echoLoop(ctx, conn)
}

// echoLoop reads messages from conn and writes them back until the connection is closed.
func echoLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		msgType, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure &&
				websocket.CloseStatus(err) != websocket.StatusGoingAway {
				slog.DebugContext(ctx, "error reading websocket message", slog.Any("error", err))
			}

			return
		}

		if err := conn.Write(ctx, msgType, data); err != nil {
			slog.ErrorContext(ctx, "error writing websocket message", slog.Any("error", err))
			return
		}
	}
}
