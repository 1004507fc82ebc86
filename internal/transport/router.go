package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"sort"
	"sync"

	"go-catalog-ms/pkg/rpcerr"

	"github.com/rs/zerolog"
)

// HandlerFunc serves one pattern. payload is the raw JSON body of the command.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) (interface{}, error)

// Reply is what goes back to the caller for every command.
type Reply struct {
	Response   interface{}   `json:"response"`
	Err        *rpcerr.Error `json:"err"`
	IsDisposed bool          `json:"isDisposed"`
}

// Status is 200 for a successful reply, else the error status.
func (r Reply) Status() int {
	if r.Err != nil {
		return r.Err.Status
	}
	return http.StatusOK
}

type Router struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	log      zerolog.Logger
}

func NewRouter(log zerolog.Logger) *Router {
	return &Router{handlers: make(map[string]HandlerFunc), log: log}
}

// Handle registers h for pattern. Registering a pattern twice panics.
func (r *Router) Handle(pattern string, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.handlers[pattern]; dup {
		panic(fmt.Sprintf("transport: duplicate handler for pattern %q", pattern))
	}
	r.handlers[pattern] = h
}

func (r *Router) Patterns() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	patterns := make([]string, 0, len(r.handlers))
	for p := range r.handlers {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns
}

// Dispatch runs the handler for pattern and turns its outcome into a Reply.
// Panics become 500 replies.
func (r *Router) Dispatch(ctx context.Context, pattern string, payload []byte) (reply Reply) {
	r.mu.RLock()
	h, ok := r.handlers[pattern]
	r.mu.RUnlock()
	if !ok {
		return failed(rpcerr.NotFound("No handler for pattern %s", pattern))
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().
				Str("pattern", pattern).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")
			reply = failed(rpcerr.Internal(fmt.Errorf("panic: %v", rec)))
		}
	}()

	if len(payload) == 0 {
		payload = []byte("{}")
	}

	res, err := h(ctx, payload)
	if err != nil {
		rpcErr := rpcerr.From(err)
		if rpcErr.Status >= http.StatusInternalServerError {
			r.log.Error().Err(err).Str("pattern", pattern).Msg("handler failed")
		} else {
			r.log.Debug().Err(err).Str("pattern", pattern).Msg("handler rejected command")
		}
		return failed(rpcErr)
	}
	return Reply{Response: res, IsDisposed: true}
}

func failed(err *rpcerr.Error) Reply {
	return Reply{Err: err, IsDisposed: true}
}
