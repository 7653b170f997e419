package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gestorapp/gestor/internal/logging"
	"github.com/gestorapp/gestor/internal/server/services"
)

const maxRequestBodySize = 1 << 20 // 1MB

type Deps struct {
	Users   *services.UserService
	Clients *services.ClientService
	Tasks   *services.TaskService
	Diary   *services.DiaryService
	Rataria *services.RatariaService
	Access  *services.AccessService
	Chat    *services.ChatService
	Files   *services.FileService
	Logger  logging.Logger
}

// NewHandler builds the full route tree. Everything except /auth requires a
// bearer token; client reordering and the credentials vault additionally
// require the admin role.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", handleSignUp(deps))
		r.Post("/signin", handleSignIn(deps))
		r.Post("/refresh", handleRefresh(deps))
		r.Post("/signout", handleSignOut(deps))
	})

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Users))

		r.Get("/profile", handleGetProfile(deps))
		r.Patch("/profile", handlePatchProfile(deps))

		r.Post("/files/presign-upload", handlePresignUpload(deps))
		r.Post("/files/presign-get", handlePresignGet(deps))

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", handleListClients(deps))
			r.Post("/", handleCreateClient(deps))
			r.Get("/{id}", handleGetClient(deps))
			r.Patch("/{id}", handleUpdateClient(deps))
			r.Delete("/{id}", handleDeleteClient(deps))
			r.With(RequireAdmin(deps.Users)).Put("/order", handleReorderClients(deps))
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", handleListTasks(deps))
			r.Post("/", handleCreateTask(deps))
			r.Patch("/{id}", handleUpdateTask(deps))
			r.Delete("/{id}", handleDeleteTask(deps))
		})

		r.Route("/diary", func(r chi.Router) {
			r.Get("/", handleListDiary(deps))
			r.Post("/", handleCreateDiary(deps))
			r.Patch("/{id}", handleUpdateDiary(deps))
			r.Delete("/{id}", handleDeleteDiary(deps))
		})

		r.Route("/rataria", func(r chi.Router) {
			r.Get("/", handleListRataria(deps))
			r.Post("/", handleCreateRataria(deps))
			r.Patch("/{id}", handleUpdateRataria(deps))
			r.Delete("/{id}", handleDeleteRataria(deps))
		})

		r.Route("/access", func(r chi.Router) {
			r.Use(RequireAdmin(deps.Users))

			r.Get("/folders", handleListFolders(deps))
			r.Post("/folders", handleCreateFolder(deps))
			r.Patch("/folders/{id}", handleUpdateFolder(deps))
			r.Delete("/folders/{id}", handleDeleteFolder(deps))

			r.Get("/entries", handleListEntries(deps))
			r.Post("/entries", handleCreateEntry(deps))
			r.Patch("/entries/{id}", handleUpdateEntry(deps))
			r.Delete("/entries/{id}", handleDeleteEntry(deps))

			r.Get("/documents", handleListDocuments(deps))
			r.Post("/documents", handleCreateDocument(deps))
			r.Patch("/documents/{id}", handleUpdateDocument(deps))
			r.Delete("/documents/{id}", handleDeleteDocument(deps))
		})

		r.Route("/chat", func(r chi.Router) {
			r.Get("/models", handleListModels(deps))
			r.Get("/sessions", handleListSessions(deps))
			r.Post("/sessions", handleCreateSession(deps))
			r.Delete("/sessions/{id}", handleDeleteSession(deps))
			r.Get("/sessions/{id}/messages", handleListMessages(deps))
			r.Post("/sessions/{id}/messages", handleSendMessage(deps))
		})
	})

	return r
}
