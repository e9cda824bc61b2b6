package keepalive

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Run expose un endpoint de vie minimal, utilisé par les hébergeurs qui
// sondent le service pour le maintenir éveillé. Bloquant.
func Run(port string) error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Poxel Bot is running!"))
	})

	log.Printf("🌐 Serveur keepalive à l'écoute sur le port %s", port)
	return http.ListenAndServe(":"+port, r)
}
