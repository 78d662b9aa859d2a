package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Pipeline.validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Catalog.validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}

func (p *PipelineConfig) validate() error {
	if p.MinSectionLen <= 0 {
		return fmt.Errorf("min_section_len must be > 0 (got %d)", p.MinSectionLen)
	}
	if p.MinTopicLen <= 0 {
		return fmt.Errorf("min_topic_len must be > 0 (got %d)", p.MinTopicLen)
	}
	if p.MaxTitleLen < 10 {
		return fmt.Errorf("max_title_len must be >= 10 (got %d)", p.MaxTitleLen)
	}
	if p.KeywordThreshold < 1 {
		return fmt.Errorf("keyword_threshold must be >= 1 (got %d)", p.KeywordThreshold)
	}
	return nil
}

func (c *CatalogConfig) validate() error {
	if c.PacingWeeks <= 0 {
		return fmt.Errorf("pacing_weeks must be > 0 (got %d)", c.PacingWeeks)
	}
	if c.MaxPageSize <= 0 {
		return fmt.Errorf("max_page_size must be > 0 (got %d)", c.MaxPageSize)
	}
	return nil
}
