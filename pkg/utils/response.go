package utils

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/moosemarche/moosebot/backend/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RespondJSON writes payload as a JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error(log.Fields{"error": err.Error()}, "failed to encode response")
	}
}

// RespondError writes {"error": message}.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}
