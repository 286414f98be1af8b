package schema

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "client_event",
	"fields" : [
		{"name": "kind", "type": "string"},
		{"name": "user_id", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "amount", "type": "double"},
		{"name": "at_unix_ms", "type": "long"}
	]
}`

type ClientEventV1 struct {
	Kind      string  `avro:"kind"`
	UserID    string  `avro:"user_id"`
	ProductID string  `avro:"product_id"`
	Quantity  int64   `avro:"quantity"`
	Amount    float64 `avro:"amount"`
	AtUnixMs  int64   `avro:"at_unix_ms"`
}
