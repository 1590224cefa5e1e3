package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/taskflow/taskflow/pkg/clog"
)

type Env struct {
	Env             string        `envconfig:"ENV" default:"local"`
	OrgID           string        `envconfig:"ORG_ID" default:"default"`
	SnapshotFile    string        `envconfig:"SNAPSHOT_FILE" default:".taskflow/org.yaml"`
	EventLogDir     string        `envconfig:"EVENT_LOG_DIR" default:".taskflow/events"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"debug"`
	OverdueInterval time.Duration `envconfig:"OVERDUE_INTERVAL" default:"1m"`
	Watch           bool          `envconfig:"WATCH" default:"false"`
}

const namespace = "TASKFLOW"

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}

func (e *Env) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelDebug
	}
	return clog.ParseLevel(e.LogLevel)
}
