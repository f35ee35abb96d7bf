package kafka

import (
	"ContentTracker/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// SyncEventPublisher 同步事件出口，发布失败只记录日志，不影响同步结果
type SyncEventPublisher interface {
	PublishAccountSynced(ctx context.Context, event *AccountSyncedEvent)
	Close() error
}

// NewSyncEventPublisher 未启用 Kafka 时返回空实现
func NewSyncEventPublisher(cfg config.KafkaConfig) (SyncEventPublisher, error) {
	if !cfg.Enable || len(cfg.Brokers) == 0 {
		log.Info("Kafka publisher disabled")
		return NoopPublisher{}, nil
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, newProducerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return NewSaramaPublisher(producer, cfg.SyncTopic), nil
}

type saramaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewSaramaPublisher(producer sarama.SyncProducer, topic string) SyncEventPublisher {
	return &saramaPublisher{producer: producer, topic: topic}
}

func (p *saramaPublisher) PublishAccountSynced(ctx context.Context, event *AccountSyncedEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.ErrorContext(ctx, "marshal sync event failed", "err", err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		// 同一账号的事件落在同一分区，保证顺序
		Key:   sarama.StringEncoder(strconv.FormatUint(event.AccountID, 10)),
		Value: sarama.ByteEncoder(payload),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		log.ErrorContext(ctx, "publish sync event failed", "account_id", event.AccountID, "err", err)
		return
	}
	log.DebugContext(ctx, "sync event published", "partition", partition, "offset", offset)
}

func (p *saramaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher 丢弃所有事件
type NoopPublisher struct{}

func (NoopPublisher) PublishAccountSynced(context.Context, *AccountSyncedEvent) {}

func (NoopPublisher) Close() error { return nil }
