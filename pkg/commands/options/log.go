package options

import (
	"time"

	"github.com/spf13/cobra"
)

// GlobalOptions are persistent flags shared by every command. Everything
// except ConfigFile is bound into config by flag name.
type GlobalOptions struct {
	ConfigFile string
	APIURL     string
	Timeout    time.Duration
	StatePath  string
	LogLevel   string
	LogFile    string
}

func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.ConfigFile, "config", "",
		"Config file (default is .diary.yaml in ., $DIARY_CONFIG_PATH or $HOME).")
	f.StringVar(&o.APIURL, "api-url", "",
		"Diary API base url, e.g. http://localhost:5000/api.")
	f.DurationVar(&o.Timeout, "timeout", 0,
		"Request timeout.")
	f.StringVar(&o.StatePath, "state", "",
		"Directory holding the saved session.")
	f.StringVar(&o.LogLevel, "log-level", "",
		"Log level: debug, info, warn or error.")
	f.StringVar(&o.LogFile, "log-file", "",
		"Write logs to this file instead of stderr.")
}
