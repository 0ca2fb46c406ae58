//go:build !dev

package cxserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/wikimedia/cxserver-lineardoc/lineardoc"
)

// maxRequestBytes bounds the size of a translate request body.
const maxRequestBytes = 50 << 20 // 50 MiB

// wsUpgrader is a Gorilla WebSocket instance, used to respond HTTP requests with WebSocket.
var wsUpgrader = websocket.Upgrader{}

// Handler serves the lineardoc pipeline over HTTP: POST /translate/html
// runs Orchestrator.Translate on the request body, and GET /debug/stream
// upgrades to a websocket that narrates one JSON frame per pipeline phase
// for a given request — a debugging aid, not part of the translation
// contract.
type Handler struct {
	// Contextualizer classifies removable regions (built by
	// lineardoc.NewMWContextualizer from loaded configuration).
	Contextualizer *lineardoc.Contextualizer

	// Boundary locates sentence boundaries in a text block's plaintext.
	Boundary lineardoc.BoundaryFunc

	// OnError is a callback that is called when an error occurs while serving a request.
	OnError func(*http.Request, error)

	// Logger configures logging for internal events.
	Logger *slog.Logger

	// init is used to initialize the handler only once.
	init sync.Once

	// logger is a private logger instance that is used to log internal events.
	logger *slog.Logger
}

// ServeHTTP implements the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.init.Do(func() {
		// initialize the logger:
		// TODO: replace with DiscardHandler in the future - https://go-review.googlesource.com/c/go/+/548335
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		if h.Logger != nil {
			h.logger = h.Logger
		}
	})

	if err := h.handleRequest(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		h.logger.Error("Serve HTTP request", "url", r.URL.Redacted(), "error", err)

		if h.OnError != nil {
			h.OnError(r, err)
		}
	}
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) error {
	switch {
	case r.URL.Path == "/translate/html" && r.Method == http.MethodPost:
		return h.handleTranslate(w, r)
	case r.URL.Path == "/debug/stream":
		return h.handleDebugStream(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return nil
	}
}

type translateRequest struct {
	HTML string `json:"html"`
}

// translateResponse is the single envelope shape for both outcomes of
// POST /translate/html (spec.md §6): on success Result holds the
// prepared HTML, on failure it holds the fixed empty-input phrase or the
// triggering exception's message. Success replies HTTP 200; every
// failure replies HTTP 500.
type translateResponse struct {
	Result string `json:"result"`
}

// errEmptyInputPhrase is the fixed error phrase spec.md §6 requires for
// empty/whitespace input, independent of lineardoc.ErrEmptyInput's own
// message text.
const errEmptyInputPhrase = "Empty content"

func (h *Handler) handleTranslate(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return h.writeResult(w, http.StatusInternalServerError, fmt.Errorf("decode request body: %w", err).Error())
	}

	orch := lineardoc.NewOrchestrator(h.Contextualizer, h.Boundary, h.logger)
	out, err := orch.Translate(req.HTML)
	if err != nil {
		if errors.Is(err, lineardoc.ErrEmptyInput) {
			return h.writeResult(w, http.StatusInternalServerError, errEmptyInputPhrase)
		}
		return h.writeResult(w, http.StatusInternalServerError, err.Error())
	}

	return h.writeResult(w, http.StatusOK, out)
}

func (h *Handler) writeResult(w http.ResponseWriter, status int, result string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(translateResponse{Result: result})
}

// streamFrame is one JSON message emitted on /debug/stream per pipeline
// phase (parse, wrap_sections, segment, serialize).
type streamFrame struct {
	Phase string `json:"phase"`
	Bytes int    `json:"bytes,omitempty"`
	Error string `json:"error,omitempty"`
}

// handleDebugStream upgrades the connection to a websocket and, for each
// incoming HTML message, narrates every orchestrator phase as a separate
// JSON frame instead of returning only the final result.
func (h *Handler) handleDebugStream(w http.ResponseWriter, r *http.Request) error {
	ws, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	for {
		_, body, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read websocket message: %w", err)
		}
		if err := h.streamTranslate(ws, string(body)); err != nil {
			return err
		}
	}
}

func (h *Handler) streamTranslate(ws *websocket.Conn, rawHTML string) error {
	send := func(f streamFrame) error { return ws.WriteJSON(f) }

	if rawHTML == "" {
		return send(streamFrame{Phase: "parse", Error: lineardoc.ErrEmptyInput.Error()})
	}

	p := lineardoc.NewParser(h.Contextualizer)
	doc, err := p.Feed(rawHTML)
	if err != nil {
		return send(streamFrame{Phase: "parse", Error: err.Error()})
	}
	if err := send(streamFrame{Phase: "parse", Bytes: len(rawHTML)}); err != nil {
		return err
	}

	doc = doc.WrapSections()
	if err := send(streamFrame{Phase: "wrap_sections"}); err != nil {
		return err
	}

	doc, err = doc.Segment(h.Boundary)
	if err != nil {
		return send(streamFrame{Phase: "segment", Error: err.Error()})
	}
	if err := send(streamFrame{Phase: "segment"}); err != nil {
		return err
	}

	out := doc.GetHTML()
	return send(streamFrame{Phase: "serialize", Bytes: len(out)})
}
