package kafka

import (
	"testing"

	"github.com/Shopify/sarama"
	"github.com/hanahub/ab-discount-app/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestGetSaramaConfig(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Kafka.ClientID = "discount-function"

	plain := GetSaramaConfig(cfg)
	assert.Equal(t, "discount-function", plain.ClientID)
	assert.False(t, plain.Net.SASL.Enable)
	assert.False(t, plain.Net.TLS.Enable)
	assert.True(t, plain.Producer.Return.Successes)

	cfg.Kafka.UseSASL = true
	cfg.Kafka.SASLMechanism = sarama.SASLTypePlaintext
	cfg.Kafka.SASLUser = "user"
	cfg.Kafka.SASLPassword = "secret"

	sasl := GetSaramaConfig(cfg)
	assert.True(t, sasl.Net.SASL.Enable)
	assert.True(t, sasl.Net.TLS.Enable)
	assert.Equal(t, sarama.SASLMechanism(sarama.SASLTypePlaintext), sasl.Net.SASL.Mechanism)
	assert.Equal(t, "user", sasl.Net.SASL.User)
}
