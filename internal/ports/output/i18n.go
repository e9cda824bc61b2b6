package output

// T expose un contrat i18n minimal pour les messages utilisateur.
// Les implémentations fournissent la résolution de clé + templating pour une
// locale donnée.
type T interface {
	// T rend le message identifié par key pour la locale donnée.
	// data est une carte optionnelle pour les placeholders (peut être nil).
	T(locale, key string, data map[string]any) string
}
