package dateutil

import "time"

// GetNowFullDateTime returns the current time as "2006-01-02 15:04:05".
func GetNowFullDateTime() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
