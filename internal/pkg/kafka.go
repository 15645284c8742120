package pkg

import (
	"context"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer 积分事件外发用的生产者，按 key 哈希保证同一事件的顺序
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	// BatchTimeout 为 0 时用 100ms，外发轮询是秒级的，没必要更快
	BatchTimeout time.Duration
}

func NewKafkaProducer(cfg KafkaConfig) (*KafkaProducer, error) {
	bt := cfg.BatchTimeout
	if bt <= 0 {
		bt = 100 * time.Millisecond
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll, // 积分流水不能丢
		BatchTimeout: bt,
		Async:        false,
	}
	return &KafkaProducer{writer: w, topic: cfg.Topic}, nil
}

func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *KafkaProducer) Send(ctx context.Context, key string, value []byte) error {
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	return p.writer.WriteMessages(ctx, msg)
}

// MakeKeyFromID 外发表行 ID 作为消息 key
func MakeKeyFromID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
