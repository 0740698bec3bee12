package httpapi

import (
	"net/http"
	"strconv"

	"schooldesk-backend-go/internal/services"
)

func flashAndRedirect(w http.ResponseWriter, r *http.Request, message, location string) {
	if message != "" {
		SetFlash(w, message)
	}
	http.Redirect(w, r, location, http.StatusFound)
}

// serviceMessage extracts the user-facing message from a ServiceError, with a
// generic fallback so internal errors never leak details.
func serviceMessage(err error) string {
	if serr, ok := err.(services.ServiceError); ok {
		return serr.Message
	}
	return "Something went wrong. Please try again."
}

func parseID(raw string) (int64, bool) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 1 {
		return 0, false
	}
	return value, true
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
