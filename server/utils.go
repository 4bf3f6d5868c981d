package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-home-io/sip-bridge/plugins/common"
)

// Plain HTTP_200 API response.
func respondOk(writer http.ResponseWriter) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	io.WriteString(writer, `{ "status": "OK" }`) // nolint: gosec, errcheck
}

// Generic API respond.
func respond(writer http.ResponseWriter, data interface{}) {
	d, err := json.Marshal(data)
	if err != nil {
		respondError(writer, http.StatusInternalServerError, err)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	writer.Write(d) // nolint: gosec, errcheck
}

// Responds with error status.
func respondError(writer http.ResponseWriter, status int, err error) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	problem, _ := json.Marshal(err.Error())
	io.WriteString(writer, fmt.Sprintf(`{ "status": "ERROR", "problem": %s }`, problem)) // nolint: gosec, errcheck
}

// Logger middleware for the API.
func (s *SIPBridgeServer) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Logger.Debug("REST invocation", common.LogURLToken, r.RequestURI, common.LogSystemToken, logSystem)
		next.ServeHTTP(w, r)
	})
}
