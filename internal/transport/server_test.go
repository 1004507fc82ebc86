package transport

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-catalog-ms/internal/event"
	"go-catalog-ms/internal/transport/mock"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func command(pattern, replyTopic string, value string) kafka.Message {
	headers := []kafka.Header{
		{Key: HeaderPattern, Value: []byte(pattern)},
		{Key: HeaderCorrelationID, Value: []byte("corr-1")},
	}
	if replyTopic != "" {
		headers = append(headers, kafka.Header{Key: HeaderReplyTopic, Value: []byte(replyTopic)})
	}
	return kafka.Message{Topic: "catalog.commands", Offset: 7, Key: []byte("key-1"), Value: []byte(value), Headers: headers}
}

// serveOne runs the server over a single message and stops it once the
// message has been committed.
func serveOne(t *testing.T, msg kafka.Message, writer *mock.MockMessageWriter, ctrl *gomock.Controller) {
	t.Helper()
	reader := mock.NewMockMessageReader(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		reader.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil),
		reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		}),
	)
	reader.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
		require.Len(t, msgs, 1)
		require.Equal(t, int64(7), msgs[0].Offset)
		cancel()
		return nil
	})

	router := NewRouter(zerolog.Nop())
	router.Handle("product.findOne", echo)

	srv, err := NewServer(reader, writer, router, ServerOptions{PoolSize: 2, HandlerTimeout: time.Second, Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.NoError(t, srv.Serve(ctx))
}

func TestServeWritesReply(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock.NewMockMessageWriter(ctrl)

	var written kafka.Message
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
		written = msgs[0]
		return nil
	})

	serveOne(t, command("product.findOne", "catalog.replies", `{"id":"p-1"}`), writer, ctrl)

	require.Equal(t, "catalog.replies", written.Topic)
	require.Equal(t, []byte("key-1"), written.Key)
	require.Equal(t, "corr-1", header(written, HeaderCorrelationID))
	require.JSONEq(t, `{"response":{"id":"p-1"},"err":null,"isDisposed":true}`, string(written.Value))
}

func TestServeUnknownPatternReplies404(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock.NewMockMessageWriter(ctrl)

	var reply Reply
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
		return json.Unmarshal(msgs[0].Value, &reply)
	})

	serveOne(t, command("product.nope", "catalog.replies", `{}`), writer, ctrl)

	require.NotNil(t, reply.Err)
	require.Equal(t, 404, reply.Err.Status)
	require.Equal(t, "No handler for pattern product.nope", reply.Err.Message)
}

func TestServeWithoutReplyTopic(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock.NewMockMessageWriter(ctrl)
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Times(0)

	serveOne(t, command("product.findOne", "", `{"id":"p-1"}`), writer, ctrl)
}

func TestServeReturnsFetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mock.NewMockMessageReader(ctrl)
	writer := mock.NewMockMessageWriter(ctrl)
	reader.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, errors.New("broker unreachable"))

	srv, err := NewServer(reader, writer, NewRouter(zerolog.Nop()), ServerOptions{PoolSize: 1, Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.ErrorContains(t, srv.Serve(context.Background()), "broker unreachable")
}

func TestServerClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mock.NewMockMessageReader(ctrl)
	writer := mock.NewMockMessageWriter(ctrl)
	reader.EXPECT().Close().Return(nil)
	writer.EXPECT().Close().Return(errors.New("flush failed"))

	srv, err := NewServer(reader, writer, NewRouter(zerolog.Nop()), ServerOptions{Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.ErrorContains(t, srv.Close(), "flush failed")
}

func TestEventPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock.NewMockMessageWriter(ctrl)

	var written kafka.Message
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
		written = msgs[0]
		return nil
	})

	pub := NewEventPublisher(writer, "catalog.events", zerolog.Nop())
	pub.Handle(event.New(event.ProductCreated, "p-1", map[string]string{"sku": "BRG-01"}))

	require.Equal(t, "catalog.events", written.Topic)
	require.Equal(t, []byte("p-1"), written.Key)
	require.Equal(t, event.ProductCreated, header(written, HeaderEventType))

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(written.Value, &envelope))
	require.Equal(t, event.ProductCreated, envelope["type"])
	require.Equal(t, map[string]interface{}{"sku": "BRG-01"}, envelope["payload"])
	require.NotEmpty(t, envelope["occurredAt"])
}

func TestServeNeverCommitsPastInFlightMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mock.NewMockMessageReader(ctrl)
	writer := mock.NewMockMessageWriter(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slow := command("product.slow", "", `{}`)
	slow.Offset = 5
	fast := command("product.fast", "", `{}`)
	fast.Offset = 6

	var mu sync.Mutex
	handled := map[int64]bool{}
	markHandled := func(offset int64) {
		mu.Lock()
		defer mu.Unlock()
		handled[offset] = true
	}
	fastDone := make(chan struct{})

	router := NewRouter(zerolog.Nop())
	router.Handle("product.slow", func(context.Context, json.RawMessage) (interface{}, error) {
		<-fastDone
		time.Sleep(50 * time.Millisecond)
		markHandled(5)
		return nil, nil
	})
	router.Handle("product.fast", func(context.Context, json.RawMessage) (interface{}, error) {
		markHandled(6)
		close(fastDone)
		return nil, nil
	})

	gomock.InOrder(
		reader.EXPECT().FetchMessage(gomock.Any()).Return(slow, nil),
		reader.EXPECT().FetchMessage(gomock.Any()).Return(fast, nil),
		reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		}),
	)

	var committed []int64
	var early []int64
	reader.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
		mu.Lock()
		defer mu.Unlock()
		for _, m := range msgs {
			for off := int64(5); off <= m.Offset; off++ {
				if !handled[off] {
					early = append(early, off)
				}
			}
			committed = append(committed, m.Offset)
			if m.Offset == 6 {
				cancel()
			}
		}
		return nil
	}).MinTimes(1)

	srv, err := NewServer(reader, writer, router, ServerOptions{PoolSize: 2, HandlerTimeout: time.Second, Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.NoError(t, srv.Serve(ctx))

	require.Empty(t, early, "committed past unhandled offsets")
	require.NotEmpty(t, committed)
	require.Equal(t, int64(6), committed[len(committed)-1])
}
