package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/timeutil"
)

// DateOptions
type DateOptions struct {
	Month string
	Day   string
}

func AddMonthArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Month to show, example: --month=2025-03 (default this month).`)
}

func AddDayArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVarP(&o.Day, "day", "d", "",
		`Pick a day, example: --day=2025-03-14.`)
}

// GetMonth returns the first instant of the selected month.
func (o *DateOptions) GetMonth(now time.Time) (time.Time, error) {
	return timeutil.ParseMonth(o.Month, now)
}

// GetDay returns the selected day, or false when none was given.
func (o *DateOptions) GetDay(now time.Time) (time.Time, bool, error) {
	if o.Day == "" {
		return time.Time{}, false, nil
	}
	t, err := timeutil.ParseDay(o.Day, now)
	return t, err == nil, err
}
