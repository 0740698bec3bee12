package httpapi

import (
	"net/http"

	"schooldesk-backend-go/internal/config"
	"schooldesk-backend-go/internal/services"
	"schooldesk-backend-go/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	DB         *sqlx.DB
	Config     config.Config
	Sessions   services.SessionService
	Files      services.FileService
	MetricsHub *services.MetricsHub
	Validate   *validator.Validate
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.MetricsHub, remote, local storage.Store) *Server {
	return &Server{
		DB:     db,
		Config: cfg,
		Sessions: services.SessionService{
			Secret: []byte(cfg.SessionSecret),
			Issuer: cfg.SessionIssuer,
		},
		Files: services.FileService{
			DB:                db,
			Remote:            remote,
			Local:             local,
			AllowedExtensions: cfg.AllowedExtensions,
		},
		MetricsHub: hub,
		Validate:   validator.New(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(WithSession(s.Sessions))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/", s.Index)
	r.Get("/register", s.RegisterPage)
	r.Post("/register", s.Register)
	r.Get("/login", s.LoginPage)
	r.Post("/login", s.Login)
	r.Get("/logout", s.Logout)
	r.Get("/timetable", s.PublicTimetable)
	r.Get("/uploads/*", s.Download)

	r.Group(func(admin chi.Router) {
		admin.Use(RequireAdmin)
		admin.Get("/admin", s.AdminDashboard)
		admin.Get("/approve/{teacherID}", s.ApproveTeacher)
		admin.Get("/admin/timetable", s.AdminTimetable)
		admin.Post("/admin/timetable", s.AddTimetableEntry)
		admin.Get("/admin/timetable/delete/{entryID}", s.DeleteTimetableEntry)
		admin.Get("/admin/metrics/history", s.MetricsHistory)
	})

	r.Group(func(teacher chi.Router) {
		teacher.Use(RequireTeacher)
		teacher.Get("/teacher/files", s.TeacherFiles)
		teacher.Post("/folder/create", s.CreateFolder)
		teacher.Post("/folder/rename/{folderID}", s.RenameFolder)
		teacher.Get("/folder/delete/{folderID}", s.DeleteFolder)
		teacher.Get("/upload", s.UploadPage)
		teacher.Post("/upload", s.UploadFile)
		teacher.Get("/file/delete/{fileID}", s.DeleteFile)
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}
