package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Ledger.validate(); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	if err := c.Verify.validate(); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	return nil
}

func (l *LedgerConfig) validate() error {
	if l.CooldownDuration <= 0 {
		return fmt.Errorf("cooldown_duration must be > 0 (got %v)", l.CooldownDuration)
	}
	if l.BurstLimit < 1 {
		return fmt.Errorf("burst_limit must be >= 1 (got %d)", l.BurstLimit)
	}
	if l.BurstWindow <= 0 {
		return fmt.Errorf("burst_window must be > 0 (got %v)", l.BurstWindow)
	}
	// The shortest useful label is a bare numeric tag like "［1V］".
	if l.LabelMaxLen < 8 {
		return fmt.Errorf("label_max_len must be >= 8 (got %d)", l.LabelMaxLen)
	}
	return nil
}

func (v *VerifyConfig) validate() error {
	if v.AdminShareThreshold <= 0 || v.AdminShareThreshold > 1 {
		return fmt.Errorf("admin_share_threshold must be in (0, 1] (got %v)", v.AdminShareThreshold)
	}
	if v.ApprovalTTL <= 0 {
		return fmt.Errorf("approval_ttl must be > 0 (got %v)", v.ApprovalTTL)
	}
	if v.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be > 0 (got %v)", v.SweepInterval)
	}
	if v.ReconcileConcurrency < 1 {
		return fmt.Errorf("reconcile_concurrency must be >= 1 (got %d)", v.ReconcileConcurrency)
	}
	return nil
}
