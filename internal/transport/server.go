package transport

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go-catalog-ms/pkg/rpcerr"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type ServerOptions struct {
	PoolSize       int
	HandlerTimeout time.Duration
	Logger         zerolog.Logger
}

// Server consumes the command topic and answers on each message's reply topic.
type Server struct {
	reader  MessageReader
	writer  MessageWriter
	router  *Router
	pool    *ants.Pool
	timeout time.Duration
	log     zerolog.Logger
	wg      sync.WaitGroup

	offsets  *offsetTracker
	commitMu sync.Mutex
}

func NewServer(reader MessageReader, writer MessageWriter, router *Router, opts ServerOptions) (*Server, error) {
	if opts.PoolSize < 1 {
		opts.PoolSize = 1
	}
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = 30 * time.Second
	}
	pool, err := ants.NewPool(opts.PoolSize)
	if err != nil {
		return nil, errors.Wrap(err, "create worker pool")
	}
	return &Server{
		reader:  reader,
		writer:  writer,
		router:  router,
		pool:    pool,
		timeout: opts.HandlerTimeout,
		log:     opts.Logger,
		offsets: newOffsetTracker(),
	}, nil
}

// Serve fetches until ctx is cancelled, then waits for in-flight handlers.
// Handlers keep running after cancellation until they finish or time out.
func (s *Server) Serve(ctx context.Context) error {
	defer s.pool.Release()
	defer s.wg.Wait()

	s.log.Info().Int("workers", s.pool.Cap()).Msg("kafka server started")
	for {
		msg, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.log.Info().Msg("kafka server stopping")
				return nil
			}
			return errors.Wrap(err, "fetch command")
		}

		s.offsets.track(msg)
		s.wg.Add(1)
		err = s.pool.Submit(func() {
			defer s.wg.Done()
			s.handle(ctx, msg)
		})
		if err != nil {
			s.wg.Done()
			s.log.Error().Err(err).Int64("offset", msg.Offset).Msg("worker pool rejected message")
		}
	}
}

func (s *Server) handle(parent context.Context, msg kafka.Message) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), s.timeout)
	defer cancel()

	pattern := header(msg, HeaderPattern)
	correlationID := header(msg, HeaderCorrelationID)
	replyTopic := header(msg, HeaderReplyTopic)

	log := s.log.With().
		Str("pattern", pattern).
		Str("correlation_id", correlationID).
		Int("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Logger()

	started := time.Now()
	var reply Reply
	if pattern == "" {
		reply = failed(rpcerr.BadRequest("Missing %s header", HeaderPattern))
	} else {
		reply = s.router.Dispatch(ctx, pattern, msg.Value)
	}
	log.Debug().Int("status", reply.Status()).Dur("took", time.Since(started)).Msg("command handled")

	if replyTopic != "" {
		if err := s.writeReply(ctx, msg, replyTopic, correlationID, reply); err != nil {
			log.Error().Err(err).Str("reply_topic", replyTopic).Msg("failed to write reply")
		}
	}

	s.commit(ctx, msg, log)
}

// commit advances the partition's offset only past contiguously finished
// messages, so a crash never skips a message that was still in flight.
func (s *Server) commit(ctx context.Context, msg kafka.Message, log zerolog.Logger) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	mark, ok := s.offsets.complete(msg)
	if !ok {
		log.Debug().Msg("commit held until earlier offsets finish")
		return
	}
	if err := s.reader.CommitMessages(ctx, mark); err != nil {
		log.Error().Err(err).Int64("commit_offset", mark.Offset).Msg("failed to commit offset")
	}
}

func (s *Server) writeReply(ctx context.Context, msg kafka.Message, topic, correlationID string, reply Reply) error {
	value, err := json.Marshal(reply)
	if err != nil {
		// the response itself could not be encoded; tell the caller instead of going silent
		value, _ = json.Marshal(failed(rpcerr.Internal(err)))
	}
	return s.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   msg.Key,
		Value: value,
		Headers: []kafka.Header{
			{Key: HeaderCorrelationID, Value: []byte(correlationID)},
		},
	})
}

// Close releases the reader and writer. Call after Serve has returned.
func (s *Server) Close() error {
	rerr := s.reader.Close()
	werr := s.writer.Close()
	if rerr != nil {
		return errors.Wrap(rerr, "close reader")
	}
	return errors.Wrap(werr, "close writer")
}
