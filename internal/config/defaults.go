package config

const (
	defaultConfigPath      = "~/.config/dubmux/config.toml"
	projectConfigName      = "dubmux.toml"
	defaultLogDir          = "~/.local/share/dubmux/logs"
	defaultLogFile         = "dubmux.log"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultConsoleLevel    = "warn"
	defaultLogMaxSizeMB    = 20
	defaultLogMaxBackups   = 5
	defaultLogMaxAgeDays   = 60
	defaultAudioDir        = "Rus Sound"
	defaultSubtitlesDir    = "Rus Subs"
	defaultSignsDir        = "надписи"
	defaultVideoExt        = ".mkv"
	defaultDestSuffix      = "_converted"
	defaultStrategy        = "numeric"
	defaultMuxerBinary     = "ffmpeg"
	defaultPrimaryLanguage = "jpn"
	defaultTrackLanguage   = "rus"
	defaultWorkers         = 1
	defaultLockPollMillis  = 500
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Layout: Layout{
			AudioDir:     defaultAudioDir,
			SubtitlesDir: defaultSubtitlesDir,
			SignsDir:     defaultSignsDir,
			VideoExt:     defaultVideoExt,
			DestSuffix:   defaultDestSuffix,
		},
		Matching: Matching{
			Strategy: defaultStrategy,
		},
		Muxer: Muxer{
			Binary:          defaultMuxerBinary,
			PrimaryLanguage: defaultPrimaryLanguage,
			TrackLanguage:   defaultTrackLanguage,
		},
		Workflow: Workflow{
			Workers:        defaultWorkers,
			LockPollMillis: defaultLockPollMillis,
		},
		Logging: Logging{
			Format:       defaultLogFormat,
			Level:        defaultLogLevel,
			ConsoleLevel: defaultConsoleLevel,
			File:         defaultLogFile,
			MaxSizeMB:    defaultLogMaxSizeMB,
			MaxBackups:   defaultLogMaxBackups,
			MaxAgeDays:   defaultLogMaxAgeDays,
		},
	}
}
