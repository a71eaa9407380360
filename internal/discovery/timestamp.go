package discovery

import (
	"strconv"
	"time"
)

// TAI currently leads UTC by 37 leap seconds.
const taiOffsetSeconds = 37

// Version renders t in the IS-04 resource-version form
// "<tai_seconds>:<nanoseconds>".
func Version(t time.Time) string {
	return strconv.FormatInt(t.Unix()+taiOffsetSeconds, 10) + ":" + strconv.Itoa(t.Nanosecond())
}
