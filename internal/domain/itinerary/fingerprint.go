package itinerary

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"tripmind/internal/utils/stringutils"
)

// ComputeFingerprint hashes the itinerary content so two structurally equal
// plans collide regardless of IDs or timestamps. Names are accent-folded so
// spelling variants of the same place count as the same content.
func ComputeFingerprint(it *Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%d|%s\n",
		stringutils.NormalizeKey(it.Destination),
		it.DurationDays,
		it.TotalBudgetVND,
		it.SpendingStyle,
	)
	if it.Hotel != nil {
		fmt.Fprintf(&b, "hotel:%s\n", stringutils.NormalizeKey(it.Hotel.Name))
	}
	for _, day := range it.Days {
		fmt.Fprintf(&b, "day%d:", day.DayNumber)
		for _, activity := range day.Activities {
			fmt.Fprintf(&b, "%s@%s-%s;",
				stringutils.NormalizeKey(activity.Name),
				activity.StartTime,
				activity.EndTime,
			)
		}
		b.WriteString("\n")
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
