package schema

import (
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEventV1(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		vMarshal := ClientEventV1{
			Kind:      "checkout_completed",
			UserID:    "testUserID",
			ProductID: "",
			Quantity:  0,
			Amount:    149.50,
			AtUnixMs:  1756722600000,
		}

		avroSchema, err := avro.Parse(ClientEventSchemaTextV1)
		require.NoError(t, err)

		data, err := avro.Marshal(avroSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal ClientEventV1
		err = avro.Unmarshal(avroSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, vMarshal, vUnmarshal)
	})
}
