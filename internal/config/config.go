package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Catalog  CatalogConfig  `yaml:"catalog"`
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

// PipelineConfig holds segmentation and extraction settings for the import
// pipeline.
type PipelineConfig struct {
	// MinSectionLen is the minimum content length for a persisted section;
	// shorter spans are noise and are dropped.
	MinSectionLen int `yaml:"min_section_len" env:"PIPELINE_MIN_SECTION_LEN" env-default:"50"`
	// MinTopicLen is the minimum paragraph length for a topic.
	MinTopicLen int `yaml:"min_topic_len" env:"PIPELINE_MIN_TOPIC_LEN" env-default:"30"`
	// MaxTitleLen is where derived titles are ellipsis-truncated.
	MaxTitleLen int `yaml:"max_title_len" env:"PIPELINE_MAX_TITLE_LEN" env-default:"100"`
	// KeywordThreshold is the minimum per-span occurrence count for a
	// keyword to be retained.
	KeywordThreshold int `yaml:"keyword_threshold" env:"PIPELINE_KEYWORD_THRESHOLD" env-default:"2"`
	// Vocabulary is the curated keyword list injected into the extractor.
	// Empty means DefaultVocabulary.
	Vocabulary []string `yaml:"vocabulary"`
	// RetainRawText controls whether the full extracted text is stored on
	// the document row.
	RetainRawText bool `yaml:"retain_raw_text" env:"PIPELINE_RETAIN_RAW_TEXT"`
	// Subject, Publisher, and Version are stamped onto every imported
	// document.
	Subject   string `yaml:"subject"   env:"PIPELINE_SUBJECT"   env-default:"mathematics"`
	Publisher string `yaml:"publisher" env:"PIPELINE_PUBLISHER"`
	Version   string `yaml:"version"   env:"PIPELINE_VERSION"   env-default:"v1"`
}

// CatalogConfig holds settings for the read-side browse service.
type CatalogConfig struct {
	// PacingWeeks is the number of instructional weeks a grade's sections
	// are spread across in the pacing overview.
	PacingWeeks int `yaml:"pacing_weeks" env:"CATALOG_PACING_WEEKS" env-default:"36"`
	// MaxPageSize caps list query page sizes.
	MaxPageSize int `yaml:"max_page_size" env:"CATALOG_MAX_PAGE_SIZE" env-default:"200"`
}

// DefaultVocabulary is the curated domain vocabulary used when the config
// supplies none. The extractor takes it as a plain argument, so it is
// replaceable without touching extraction logic.
var DefaultVocabulary = []string{
	"addition", "subtraction", "multiplication", "division",
	"fraction", "decimal", "percent", "ratio", "rate", "proportion",
	"equation", "expression", "variable", "inequality", "exponent",
	"integer", "rational", "coordinate", "graph", "slope",
	"angle", "triangle", "polygon", "circle", "area", "perimeter",
	"volume", "surface area", "probability", "statistics", "mean",
	"median", "geometry", "algebra", "measurement", "function",
}

// Vocab returns the configured vocabulary, falling back to the default.
func (p PipelineConfig) Vocab() []string {
	if len(p.Vocabulary) > 0 {
		return p.Vocabulary
	}
	return DefaultVocabulary
}
