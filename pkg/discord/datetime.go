package discord

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/pkg/tz"
)

// Formats de saisie utilisateur : date JJ/MM/AAAA, heure HHhMM, durée "2h" ou
// "90min". Les saisies sont interprétées en heure de Paris, les instants
// renvoyés sont en UTC.

var durationRe = regexp.MustCompile(`^(\d+)\s*(h|min)$`)

// ParseClock lit une heure au format HHhMM (ex: 21h30).
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(strings.ToLower(s)), "h", 2)
	if len(parts) != 2 {
		return 0, 0, domain.ErrInvalidInput
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, domain.ErrInvalidInput
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, domain.ErrInvalidInput
	}
	return hour, minute, nil
}

// ParseDuration lit une durée au format "2h" ou "90min".
func ParseDuration(s string) (time.Duration, error) {
	m := durationRe.FindStringSubmatch(strings.TrimSpace(strings.ToLower(s)))
	if m == nil {
		return 0, domain.ErrInvalidInput
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, domain.ErrInvalidInput
	}
	if m[2] == "min" {
		return time.Duration(n) * time.Minute, nil
	}
	return time.Duration(n) * time.Hour, nil
}

// ParsePlannedStart combine une date JJ/MM/AAAA et une heure HHhMM en un
// instant UTC.
func ParsePlannedStart(dateStr, clockStr string) (time.Time, error) {
	d, err := time.Parse("02/01/2006", strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	hour, minute, err := ParseClock(clockStr)
	if err != nil {
		return time.Time{}, err
	}
	local := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, tz.Paris)
	return local.UTC(), nil
}

// SameDayStart place l'heure HHhMM sur le jour courant (heure de Paris) ;
// si cet instant est déjà passé, il est reporté au lendemain.
func SameDayStart(now time.Time, clockStr string) (time.Time, error) {
	hour, minute, err := ParseClock(clockStr)
	if err != nil {
		return time.Time{}, err
	}
	nowParis := now.In(tz.Paris)
	start := time.Date(nowParis.Year(), nowParis.Month(), nowParis.Day(), hour, minute, 0, 0, tz.Paris)
	if start.Before(nowParis) {
		start = start.AddDate(0, 0, 1)
	}
	return start.UTC(), nil
}
