package timer

import (
	"fmt"
	"time"
)

// ToReadable formats d as H:MM:SS, flooring each unit. Negative values
// format as zero. Hours wrap at 24, so 30h formats as "6:00:00".
func ToReadable(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	s := secs % 60
	m := (secs / 60) % 60
	h := (secs / 3600) % 24
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
