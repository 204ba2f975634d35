package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// NextID allocates the next sequential id for the given prefix by
// scanning existing ids of the form PREFIX-NNN and incrementing the
// highest numeric suffix. Ids that do not match the pattern are
// ignored. An empty collection yields PREFIX-001.
func NextID(photos []Photo, prefix string) string {
	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `-(\d+)$`)

	maxNumber := 0
	for _, p := range photos {
		match := pattern.FindStringSubmatch(p.ID)
		if match == nil {
			continue
		}
		num, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if num > maxNumber {
			maxNumber = num
		}
	}

	return fmt.Sprintf("%s-%03d", prefix, maxNumber+1)
}
