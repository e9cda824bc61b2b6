package tz

import "time"

// Paris est le fuseau Europe/Paris. Les dates saisies et affichées par les
// utilisateurs sont en heure de Paris ; le document d'état stocke en UTC.
var Paris *time.Location

func init() {
	var err error
	Paris, err = time.LoadLocation("Europe/Paris")
	if err != nil {
		panic("tz: load Europe/Paris: " + err.Error())
	}
}
