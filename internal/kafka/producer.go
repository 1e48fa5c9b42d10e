package kafka

import (
	"github.com/Shopify/sarama"
)

// Producer publishes audit events to kafka. The service has no
// inbound mq operations, so only the producing side is wired.
type Producer struct {
	client   sarama.Client
	producer sarama.SyncProducer
}

// NewProducer ...
func NewProducer(
	addrs []string,
) (p *Producer, err error) {
	p = &Producer{}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	if p.client, err = sarama.NewClient(addrs, cfg); err != nil {
		return
	}
	p.producer, err = sarama.NewSyncProducerFromClient(p.client)
	return
}

// NewPublish returns publish func for topic.
func (p *Producer) NewPublish(topic string) Publish {
	return func(message []byte) (err error) {
		msg := &sarama.ProducerMessage{
			Topic: topic,
			Value: sarama.ByteEncoder(message),
		}
		_, _, err = p.producer.SendMessage(msg)
		return
	}
}

// Close the producer.
func (p *Producer) Close() {
	p.producer.Close()
	p.client.Close()
}
