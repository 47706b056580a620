package digest

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Digest schedules are standard 5-field cron expressions
// (minute hour day-of-month month day-of-week).
var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// parseSchedule parses the posting schedule once so Run never has to re-parse
// a known-good expression.
func parseSchedule(expr string) (cron.Schedule, error) {
	sched, err := scheduleParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("digest: schedule %q: %w", expr, err)
	}
	return sched, nil
}

// untilNext returns the wait before the schedule's next fire time, clamped to
// zero.
func untilNext(sched cron.Schedule) time.Duration {
	d := time.Until(sched.Next(time.Now()))
	if d < 0 {
		return 0
	}
	return d
}
