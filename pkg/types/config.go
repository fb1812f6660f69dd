package types

// GateConfig holds settings for the two-stage relevance gate.
type GateConfig struct {
	// MinConfidence is the minimum filter confidence required to run the
	// expensive extraction stage (default 0.7).
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`
}

// DefaultMinConfidence is applied when GateConfig.MinConfidence is zero.
const DefaultMinConfidence = 0.7

// Threshold returns the configured confidence threshold with the default
// applied.
func (g GateConfig) Threshold() float64 {
	if g.MinConfidence <= 0 {
		return DefaultMinConfidence
	}
	return g.MinConfidence
}

// AggregationConfig holds settings for the aggregation stage.
type AggregationConfig struct {
	GateConfig `yaml:",inline"`

	// PayloadsDir is the directory holding extraction payload envelopes
	// (*.json), one per paper.
	PayloadsDir string `json:"payloads_dir" yaml:"payloads_dir"`

	// OutputDir is the directory for per-gene database exports.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// StoreConfig holds settings for the SQLite store stage.
type StoreConfig struct {
	// DataDir is the base directory for persisted data (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ReportConfig holds settings for tabular report generation.
type ReportConfig struct {
	// OutputDir is the directory for CSV/XLSX report files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Aggregation AggregationConfig `json:"aggregation" yaml:"aggregation"`
	Store       StoreConfig       `json:"store" yaml:"store"`
	Report      ReportConfig      `json:"report" yaml:"report"`
}
