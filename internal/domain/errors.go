package domain

import "errors"

// Error est une erreur métier identifiée par un code stable.
// Le code sert de clé de traduction côté présentation (errors.<code>).
type Error struct {
	code    string
	message string
}

func (e *Error) Error() string { return e.message }

// ErrorCode renvoie le code stable de l'erreur.
func (e *Error) ErrorCode() string { return e.code }

// Domain errors.
var (
	ErrEventNotFound      = &Error{"event_not_found", "événement non trouvé"}
	ErrContestNotFound    = &Error{"contest_not_found", "concours non trouvé"}
	ErrEventExists        = &Error{"event_exists", "un événement porte déjà ce nom"}
	ErrContestExists      = &Error{"contest_exists", "un concours porte déjà ce titre"}
	ErrAlreadyRegistered  = &Error{"already_registered", "participant déjà inscrit"}
	ErrNotRegistered      = &Error{"not_registered", "participant non inscrit"}
	ErrRegistrationClosed = &Error{"registration_closed", "les inscriptions sont closes"}
	ErrNoParticipants     = &Error{"no_participants", "aucun participant"}
	ErrInvalidInput       = &Error{"invalid_input", "saisie invalide"}
	ErrDateTimeInPast     = &Error{"datetime_in_past", "la date et l'heure doivent être dans le futur"}
	ErrRemoteUnavailable  = &Error{"remote_unavailable", "ressource Discord introuvable"}
	ErrPersistenceFailure = &Error{"persistence_failure", "échec de la sauvegarde de l'état"}
)

// Code extrait le code métier d'une erreur (chaîne vide si ce n'est pas une
// erreur du domaine).
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.ErrorCode()
	}
	return ""
}
