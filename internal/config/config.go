package config

// Config holds app configuration.
type Config struct {
	InputFile  string `mapstructure:"input"`
	OutputFile string `mapstructure:"output"`

	// Basename overrides the name keys are derived from — useful when
	// decrypting/encrypting a file under a different name than it was
	// originally keyed with.
	Basename string `mapstructure:"basename"`

	// Region selects a known SIF region: "w" (EN/WW), "j" (JP), "t" (TW),
	// "c" (CN), or "x" for a custom game file (see KeyTableFile/Prefix/
	// NameSum below). Empty means auto-detect, decrypt-only.
	Region string `mapstructure:"region"`

	// Version is the encrypt version, 1-6, or 0 to "default to V3"
	// (matching the reference tool's own default). Decryption does not read
	// it: the version is always auto-detected from the header (V2-V6).
	Version int `mapstructure:"version"`

	Encrypt bool `mapstructure:"encrypt"`
	Detect  bool `mapstructure:"detect"`

	// KeyTableFile/Prefix/NameSum configure Region "x": a custom SIF-like
	// game file. NameSum -1 means "derive from Prefix".
	KeyTableFile string `mapstructure:"key_table_file"`
	Prefix       string `mapstructure:"prefix"`
	NameSum      int    `mapstructure:"name_sum"`

	DryRun       bool   `mapstructure:"dry_run"`
	LogLevel     string `mapstructure:"log_level"`
	LogOutputDir string `mapstructure:"log_output_dir"`
}
