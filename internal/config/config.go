package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Export struct {
		Dir string
	}
	Probe struct {
		Addr      string
		TimeoutMS int
	}
	Query struct {
		DeadlineMS int
		DurationMS int
	}
	Import struct {
		DefaultCount int
		BudgetBytes  int64
	}
	Tree struct {
		MaxDepth int
	}
}

// ProbeTimeout returns the dial timeout for the unreachable-host probe.
func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Probe.TimeoutMS) * time.Millisecond
}

// QueryDeadline returns the deadline applied to the aggregation query.
func (c Config) QueryDeadline() time.Duration {
	return time.Duration(c.Query.DeadlineMS) * time.Millisecond
}

// QueryDuration returns how long the simulated aggregation query runs.
func (c Config) QueryDuration() time.Duration {
	return time.Duration(c.Query.DurationMS) * time.Millisecond
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("FAULTLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.path", "data/faultline.db")
	v.SetDefault("export.dir", "data/exports")
	v.SetDefault("probe.addr", "db.internal.local:5432")
	v.SetDefault("probe.timeoutms", 2000)
	v.SetDefault("query.deadlinems", 2000)
	v.SetDefault("query.durationms", 10000)
	v.SetDefault("import.defaultcount", 500000)
	v.SetDefault("import.budgetbytes", 512*1024*1024)
	v.SetDefault("tree.maxdepth", 1000)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
