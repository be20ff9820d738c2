package config

// Stampfile represents the structure of the stamp.yaml configuration file.
type Stampfile struct {
	Version string              `yaml:"version"`
	BaseDir string              `yaml:"base_dir"`
	Assets  map[string]AssetDTO `yaml:"assets"`
}

// AssetDTO represents one asset namespace definition in the configuration.
type AssetDTO struct {
	Include               []string `yaml:"include"`
	WorkDir               string   `yaml:"work_dir"`
	Output                string   `yaml:"output"`
	ChecksumLength        int      `yaml:"checksum_length"`
	LockWaitSeconds       int      `yaml:"lock_wait_seconds"`
	FingerprintMaxAgeSecs int      `yaml:"fingerprint_max_age_seconds"`
	Persist               bool     `yaml:"persist"`
}
