package settings

import "flag"

// Flags are the command line overrides applied on top of a settings file.
type Flags struct {
	Config    string
	Debug     bool
	LogFile   string
	StatsAddr string
	SentryDSN string
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to a YAML or TOML settings file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging, including simulation traces")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to a rotating file as well")
	fs.StringVar(&f.StatsAddr, "stats", "", "Serve runtime stats on this address, e.g. localhost:18066")
	fs.StringVar(&f.SentryDSN, "sentry-dsn", "", "Report panics to this Sentry DSN")
}

// Apply overrides s with every flag that was set.
func (f *Flags) Apply(s *Settings) {
	if f.Debug {
		s.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		s.Logging.File = f.LogFile
	}
	if f.StatsAddr != "" {
		s.Stats.Addr = f.StatsAddr
	}
	if f.SentryDSN != "" {
		s.Sentry.DSN = f.SentryDSN
	}
}

// Load loads the configured file and applies the overrides: defaults < file < flags.
func (f *Flags) Load() (*Settings, error) {
	s, err := Load(f.Config)
	if err != nil {
		return nil, err
	}
	f.Apply(s)
	return s, s.Validate()
}
