package config

const (
	defaultRepoRoot          = "~/.local/share/discograph/repo"
	defaultDatabasePath      = "~/.local/share/discograph/repo.db"
	defaultLogDir            = "~/.local/share/discograph/logs"
	defaultRemoteTimeoutSecs = 30
	defaultVCSBinary         = "git"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RepoRoot:     defaultRepoRoot,
			DatabasePath: defaultDatabasePath,
			LogDir:       defaultLogDir,
		},
		Remote: Remote{
			TimeoutSeconds: defaultRemoteTimeoutSecs,
		},
		VCS: VCS{
			Binary: defaultVCSBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
