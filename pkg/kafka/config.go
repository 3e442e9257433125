package kafka

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
)

// ProducerConfig holds producer configuration. Zero fields are filled from
// the default tags, so RequiredAcks 0 means leader acks; use -1 for all.
type ProducerConfig struct {
	Brokers      []string
	RequiredAcks int           `default:"1"`
	Compression  string        `default:"snappy"`
	MaxAttempts  int           `default:"3"`
	WriteTimeout time.Duration `default:"10s"`
	ReadTimeout  time.Duration `default:"10s"`
	BatchSize    int           `default:"100"`
	BatchBytes   int           `default:"1048576"`
	BatchTimeout time.Duration `default:"50ms"`
	Async        bool
	// HashByKey keeps messages with the same key on one partition.
	HashByKey    bool
}

func (c ProducerConfig) withDefaults() (ProducerConfig, error) {
	if err := defaults.Set(&c); err != nil {
		return c, fmt.Errorf("kafka defaults: %w", err)
	}
	return c, nil
}
