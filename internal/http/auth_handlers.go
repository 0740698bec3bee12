package httpapi

import (
	"net/http"

	"schooldesk-backend-go/internal/services"
)

type RegisterForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginForm struct {
	Role     string `validate:"required,oneof=admin teacher"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page":  "register",
		"flash": PopFlash(w, r),
	})
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, "Invalid form submission.", "/register")
		return
	}
	form := RegisterForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := s.Validate.Struct(form); err != nil {
		flashAndRedirect(w, r, "Name, a valid email and a password are required.", "/register")
		return
	}
	if err := services.RegisterTeacher(s.DB, form.Name, form.Email, form.Password); err != nil {
		flashAndRedirect(w, r, serviceMessage(err), "/register")
		return
	}
	flashAndRedirect(w, r, "Registration successful! Wait for admin approval.", "/login")
}

func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page":  "login",
		"flash": PopFlash(w, r),
	})
}

// Login handles both roles from a single form. Issuing a new session blob
// replaces whatever session came with the request, so a caller is never both
// admin and teacher.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, "Invalid form submission.", "/login")
		return
	}
	form := LoginForm{
		Role:     r.PostFormValue("role"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := s.Validate.Struct(form); err != nil {
		flashAndRedirect(w, r, "Role, email and password are required.", "/login")
		return
	}

	if form.Role == "admin" {
		if _, err := services.AuthenticateAdmin(s.DB, form.Email, form.Password); err != nil {
			flashAndRedirect(w, r, serviceMessage(err), "/login")
			return
		}
		blob, err := s.Sessions.IssueAdmin()
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		setSessionCookie(w, blob)
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	teacher, err := services.AuthenticateTeacher(s.DB, form.Email, form.Password)
	if err != nil {
		flashAndRedirect(w, r, serviceMessage(err), "/login")
		return
	}
	blob, err := s.Sessions.IssueTeacher(teacher.ID, teacher.Name)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	setSessionCookie(w, blob)
	http.Redirect(w, r, "/upload", http.StatusFound)
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
