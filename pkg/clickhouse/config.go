package clickhouse

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
)

// ClientConfig holds the ClickHouse connection settings used by the outcome sink.
// Zero fields are filled from the default tags.
type ClientConfig struct {
	Host            string
	Port            int `default:"9000"`
	Database        string
	User            string
	Password        string
	MaxOpenConns    int           `default:"10"`
	MaxIdleConns    int           `default:"5"`
	ConnMaxLifetime time.Duration `default:"5m"`
	DialTimeout     time.Duration `default:"5s"`
	ReadTimeout     time.Duration `default:"10s"`
	UseHTTP         bool
	AsyncInsert     bool
	WaitForAsync    bool
	MaxExecTime     time.Duration
}

func (c ClientConfig) withDefaults() (ClientConfig, error) {
	if err := defaults.Set(&c); err != nil {
		return c, fmt.Errorf("clickhouse defaults: %w", err)
	}
	return c, nil
}
