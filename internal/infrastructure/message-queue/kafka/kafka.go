package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"tienda-api/config"
	"tienda-api/internal/dto"
)

func CreateKafkaProducer(config *config.Config) *kafka.Conn {
	conn, err := kafka.DialLeader(context.Background(), "tcp", config.KafkaConfig.BrokerAddress, config.KafkaConfig.BrokerTopic, config.KafkaConfig.BrokerPartition)
	if err != nil {
		panic(err)
	}

	return conn
}

type Publisher struct {
	conn *kafka.Conn
}

func CreatePublisher(conn *kafka.Conn) *Publisher {
	return &Publisher{conn: conn}
}

func (p *Publisher) Publish(eventType string, key string, data interface{}) error {
	msg := dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	}

	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	_, err = p.conn.WriteMessages(
		kafka.Message{
			Key:   []byte(key),
			Value: jsonMsg,
		},
	)

	return err
}
