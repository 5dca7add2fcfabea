package bridge

import (
	"fmt"
	"os"
	"time"

	"github.com/denisbrodbeck/machineid"
	"gopkg.in/yaml.v3"
)

// Config configures the MQTT to PID bridge.
type Config struct {
	Broker      string `yaml:"broker"`
	TopicPrefix string `yaml:"topic_prefix"`
	ClientID    string `yaml:"client_id"`
	Device      string `yaml:"device"`
	Address     uint8  `yaml:"address"`
	NoAck       bool   `yaml:"no_ack"`
	SettleMs    int    `yaml:"settle_ms"`
}

// Load reads, normalizes and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Normalize fills optional fields with defaults. The client ID defaults
// to an identifier derived from the machine ID.
func (c *Config) Normalize() {
	if c.TopicPrefix == "" {
		c.TopicPrefix = "pid"
	}
	if c.ClientID == "" {
		if id, err := machineid.ID(); err == nil {
			c.ClientID = "pid-" + id
		}
	}
}

// Validate rejects configs that cannot run.
func (c *Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	if c.Device == "" {
		return fmt.Errorf("device is required")
	}
	if c.SettleMs < 0 {
		return fmt.Errorf("settle_ms must not be negative")
	}
	return nil
}

// Settle returns the configured settle interval, zero meaning the session
// default.
func (c *Config) Settle() time.Duration {
	return time.Duration(c.SettleMs) * time.Millisecond
}
