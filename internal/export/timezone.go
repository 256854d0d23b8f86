package export

import (
	"fmt"
	"time"
)

// ResolveLocation resolves a configured timezone name to a
// *time.Location. The empty string and "Local" mean the process-local
// zone; anything else must be a valid IANA name such as "Asia/Seoul".
func ResolveLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}
	return loc, nil
}
