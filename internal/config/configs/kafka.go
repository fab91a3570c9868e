package configs

import "time"

// Kafka configures the spend event publisher. Publishing is disabled when
// Brokers is empty.
type Kafka struct {
	Brokers       []string      `env:"BROKERS" envSeparator:","`
	SpendTopic    string        `env:"SPEND_TOPIC" envDefault:"geo-bidder.spend"`
	Buffer        int           `env:"BUFFER" envDefault:"10000"`
	BatchSize     int           `env:"BATCH_SIZE" envDefault:"500"`
	FlushInterval time.Duration `env:"FLUSH_INTERVAL" envDefault:"200ms"`
}

// Enabled reports whether any broker is configured.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}
