// Package timefmt formate les comptes à rebours affichés dans les annonces.
// Le format est un invariant produit (français, deux plus grandes unités) et
// ne passe donc pas par le catalogue i18n.
package timefmt

import (
	"fmt"
	"time"
)

// Countdown rend une durée sous la forme de ses deux plus grandes unités,
// ex. "2 jour(s), 5 heure(s)" ou "45 seconde(s)". Une durée écoulée est
// préfixée de "FINI IL Y A".
func Countdown(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		return "FINI IL Y A " + largestTwoUnits(-total)
	}
	return largestTwoUnits(total)
}

// Until est un raccourci pour Countdown(t - now).
func Until(t, now time.Time) string {
	return Countdown(t.Sub(now))
}

func largestTwoUnits(totalSeconds int64) string {
	minutes, seconds := totalSeconds/60, totalSeconds%60
	hours, minutes := minutes/60, minutes%60
	days, hours := hours/24, hours%24

	switch {
	case days > 0:
		return fmt.Sprintf("%d jour(s), %d heure(s)", days, hours)
	case hours > 0:
		return fmt.Sprintf("%d heure(s), %d minute(s)", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%d minute(s), %d seconde(s)", minutes, seconds)
	default:
		return fmt.Sprintf("%d seconde(s)", seconds)
	}
}
