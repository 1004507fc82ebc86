package transport

import (
	"sync"

	"github.com/segmentio/kafka-go"
)

type topicPartition struct {
	topic     string
	partition int
}

type partitionOffsets struct {
	pending []kafka.Message // fetch order, oldest first
	done    map[int64]bool
}

// offsetTracker turns out-of-order completions into a contiguous commit
// watermark per partition: a message is committable only once every message
// fetched before it on the same partition has finished.
type offsetTracker struct {
	mu         sync.Mutex
	partitions map[topicPartition]*partitionOffsets
}

func newOffsetTracker() *offsetTracker {
	return &offsetTracker{partitions: map[topicPartition]*partitionOffsets{}}
}

func (t *offsetTracker) track(msg kafka.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := topicPartition{msg.Topic, msg.Partition}
	p, ok := t.partitions[key]
	if !ok {
		p = &partitionOffsets{done: map[int64]bool{}}
		t.partitions[key] = p
	}
	p.pending = append(p.pending, msg)
}

// complete marks msg finished and returns the newest message whose
// predecessors are all finished, if the watermark moved.
func (t *offsetTracker) complete(msg kafka.Message) (kafka.Message, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.partitions[topicPartition{msg.Topic, msg.Partition}]
	if !ok {
		return kafka.Message{}, false
	}
	p.done[msg.Offset] = true

	var mark kafka.Message
	moved := false
	for len(p.pending) > 0 && p.done[p.pending[0].Offset] {
		mark = p.pending[0]
		delete(p.done, mark.Offset)
		p.pending = p.pending[1:]
		moved = true
	}
	return mark, moved
}
