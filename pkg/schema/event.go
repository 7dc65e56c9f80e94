package schema

import (
	"fmt"

	"github.com/hamba/avro/v2"
)

// ClientEventSchemaTextV1 is the wire schema for client analytics events.
const ClientEventSchemaTextV1 = `{
	"type": "record",
	"name": "ClientEvent",
	"namespace": "storefront.events.v1",
	"fields": [
		{"name": "event_type", "type": "string"},
		{"name": "user_id", "type": "string"},
		{"name": "subject", "type": "string"},
		{"name": "timestamp_ms", "type": "long"}
	]
}`

type ClientEventV1 struct {
	EventType   string `avro:"event_type"`
	UserID      string `avro:"user_id"`
	Subject     string `avro:"subject"`
	TimestampMS int64  `avro:"timestamp_ms"`
}

type Serde interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

type serde struct {
	avroSchema avro.Schema
}

func (s serde) Encode(v any) ([]byte, error) {
	return avro.Marshal(s.avroSchema, v)
}

func (s serde) Decode(data []byte, v any) error {
	return avro.Unmarshal(s.avroSchema, data, v)
}

func NewSerdeClientEventV1() (Serde, error) {
	const op = "NewSerdeClientEventV1"

	avroSchema, err := avro.Parse(ClientEventSchemaTextV1)
	if err != nil {
		return serde{}, fmt.Errorf("%s: %w", op, err)
	}
	return serde{avroSchema}, nil
}
