package types

import "time"

// UnixTimestamp is a consensus timestamp in whole seconds since the Unix
// epoch.
type UnixTimestamp int64

// NowTimestamp returns the current wall clock truncated to seconds.
func NowTimestamp() UnixTimestamp {
	return UnixTimestamp(time.Now().Unix())
}

func (ts UnixTimestamp) Time() time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

func (ts UnixTimestamp) String() string {
	return ts.Time().Format(time.RFC3339)
}

// Seconds is a duration in whole seconds, used for candlestick intervals.
type Seconds int64

func (s Seconds) Duration() time.Duration {
	return time.Duration(s) * time.Second
}
