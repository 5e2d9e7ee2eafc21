package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Verify   VerifyConfig   `yaml:"verify"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// LedgerConfig holds the attestation-ledger policy knobs.
type LedgerConfig struct {
	// CooldownDuration is the per-actor wait between successful
	// non-privileged attestations.
	CooldownDuration time.Duration `yaml:"cooldown_duration" env:"LEDGER_COOLDOWN_DURATION" env-default:"1h"`
	// BurstLimit caps in-flight attestation attempts per actor within
	// the burst window.
	BurstLimit  int           `yaml:"burst_limit"  env:"LEDGER_BURST_LIMIT"  env-default:"3"`
	BurstWindow time.Duration `yaml:"burst_window" env:"LEDGER_BURST_WINDOW" env-default:"60s"`
	// LabelMaxLen is the platform's display-label length limit, applied
	// after tag composition.
	LabelMaxLen int `yaml:"label_max_len" env:"LEDGER_LABEL_MAX_LEN" env-default:"32"`
}

// VerifyConfig holds verification-heuristic and approval settings.
type VerifyConfig struct {
	// AdminShareThreshold is the fraction of an account's counter that may
	// be admin-attributed before the heuristic requests a human decision.
	AdminShareThreshold float64 `yaml:"admin_share_threshold" env:"VERIFY_ADMIN_SHARE_THRESHOLD" env-default:"0.45"`
	// ApprovalTTL is how long an unresolved decision request survives
	// before the sweep purges it.
	ApprovalTTL   time.Duration `yaml:"approval_ttl"   env:"VERIFY_APPROVAL_TTL"   env-default:"24h"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"VERIFY_SWEEP_INTERVAL" env-default:"1h"`
	// BroadcastChannel is the shared channel used when no privileged
	// recipient is directly reachable.
	BroadcastChannel string `yaml:"broadcast_channel" env:"VERIFY_BROADCAST_CHANNEL"`
	// ReconcileConcurrency bounds the fan-out of bulk reconciliation.
	ReconcileConcurrency int `yaml:"reconcile_concurrency" env:"VERIFY_RECONCILE_CONCURRENCY" env-default:"4"`
}
