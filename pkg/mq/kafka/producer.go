package kafka

import (
	"encoding/json"
	"sync"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/gamekit/pkg/settings"
	"github.com/huynhanx03/gamekit/pkg/utils"
)

const (
	defaultFlushFrequency  = 100 // millis
	defaultFlushBytes      = 64 * 1024
	defaultMaxMessageBytes = 1024 * 1024
	defaultTimeout         = 10 // seconds
	defaultMaxRetries      = 3
	defaultRetryBackoff    = 100 // millis
)

// Keyed is implemented by messages that choose their own partition key.
type Keyed interface {
	Key() string
}

// Publisher ships JSON-encoded messages to one Kafka topic through an
// async producer. It satisfies batcher.Consumer for any Keyed type, so
// it plugs directly under a StripedBatcher.
type Publisher[T Keyed] struct {
	producer sarama.AsyncProducer
	topic    string
	log      *zap.Logger
	wg       sync.WaitGroup
}

// NewPublisher connects an async producer using cfg.
// Zero-valued tuning fields fall back to defaults.
func NewPublisher[T Keyed](cfg *settings.Kafka, log *zap.Logger) (*Publisher[T], error) {
	if cfg.Topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	sc := sarama.NewConfig()
	sc.Producer.Return.Errors = true
	sc.Producer.RequiredAcks = sarama.WaitForLocal
	sc.Producer.Flush.Frequency = utils.ToDurationMs(orDefault(cfg.FlushFrequency, defaultFlushFrequency))
	sc.Producer.Flush.Bytes = orDefault(cfg.FlushBytes, defaultFlushBytes)
	sc.Producer.MaxMessageBytes = orDefault(cfg.MaxMessageBytes, defaultMaxMessageBytes)
	sc.Producer.Timeout = utils.ToDuration(orDefault(cfg.Timeout, defaultTimeout))
	sc.Producer.Retry.Max = orDefault(cfg.MaxRetries, defaultMaxRetries)
	sc.Producer.Retry.Backoff = utils.ToDurationMs(orDefault(cfg.RetryBackoff, defaultRetryBackoff))

	producer, err := sarama.NewAsyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, errors.Wrap(err, "create kafka producer")
	}

	p := &Publisher[T]{
		producer: producer,
		topic:    cfg.Topic,
		log:      log,
	}

	p.wg.Add(1)
	go p.drainErrors()
	return p, nil
}

// Consume publishes a batch. Encoding failures skip the message;
// delivery failures surface asynchronously on the error channel.
func (p *Publisher[T]) Consume(batch []T) error {
	for _, msg := range batch {
		value, err := json.Marshal(msg)
		if err != nil {
			p.log.Error("failed to encode message", zap.Error(err))
			continue
		}

		p.producer.Input() <- &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(msg.Key()),
			Value: sarama.ByteEncoder(value),
		}
	}
	return nil
}

// Close shuts the producer down, flushing buffered messages.
func (p *Publisher[T]) Close() {
	p.producer.AsyncClose()
	p.wg.Wait()
}

func (p *Publisher[T]) drainErrors() {
	defer p.wg.Done()

	for err := range p.producer.Errors() {
		p.log.Error("kafka publish failed",
			zap.String("topic", err.Msg.Topic),
			zap.Error(err.Err),
		)
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
