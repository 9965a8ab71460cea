package appconfig

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp"
)

// ShowConfig prints the current configuration summary. Debug mode appends a full dump.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	effective := fallback
	if cfg != nil {
		effective = *cfg
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  API Base URL:    %s\n", effective.BaseURL())
	fmt.Fprintf(out, "  Timeout:         %s\n", effective.RequestTimeout())
	fmt.Fprintf(out, "  Poll Interval:   %s\n", effective.PollInterval())
	fmt.Fprintf(out, "  Demo Refresh:    %s\n", effective.DemoRefreshDelay())
	fmt.Fprintf(out, "  Recent Limit:    %d\n", effective.RecentCount())
	fmt.Fprintf(out, "  Listen Address:  %s\n", effective.ListenAddress())
	fmt.Fprintf(out, "  Debug:           %v\n", effective.Debug)
	fmt.Fprintf(out, "  JSON Mode:       %v\n", effective.JSONMode)
	fmt.Fprintf(out, "  Log File:        %s\n", effective.LogFilePath())

	if effective.Debug {
		fmt.Fprintln(out)
		pp.Fprintln(out, effective)
	}
}
