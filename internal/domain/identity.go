package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// memberIDPattern matches roster IDs: a 4-digit year, a hyphen, and a
// zero-padded 3-digit sequence number.
var memberIDPattern = regexp.MustCompile(`^(\d{4})-(\d{3})$`)

// NextID returns the next free ID for the given year. It scans the existing
// collection for IDs with the year's prefix, takes the highest sequence
// number observed, and returns that number plus one. Sequence numbers are a
// watermark: gaps left by deleted members are never reused. With no matching
// IDs the sequence starts at 001.
func NextID(members []Member, year int) string {
	prefix := strconv.Itoa(year)
	max := 0
	for _, m := range members {
		parts := memberIDPattern.FindStringSubmatch(m.ID)
		if parts == nil || parts[1] != prefix {
			continue
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1)
}

// IDExists reports whether any member carries exactly the given ID.
func IDExists(members []Member, id string) bool {
	for _, m := range members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// EmailExists reports whether any member's email matches the given one under
// case-insensitive comparison. A non-negative excludeIndex skips that
// position, which lets an update keep its own email.
func EmailExists(members []Member, email string, excludeIndex int) bool {
	for i, m := range members {
		if i == excludeIndex {
			continue
		}
		if strings.EqualFold(m.Email, email) {
			return true
		}
	}
	return false
}
