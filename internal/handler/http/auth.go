package http

import (
	"encoding/json"
	"net/http"

	"github.com/vmartynenko/go-soupsync/internal/logger"
	"github.com/vmartynenko/go-soupsync/internal/utils"
)

type tokenRequest struct {
	Username string `json:"username"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// issueToken hands out a signed bearer token for the given username. The
// mock server does not keep user accounts; any non-empty username gets a
// token whose subject becomes the sync-manager identity on the client side.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		log.Warn().Msg("token request without username")
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}

	token, err := utils.GenerateToken(h.tokenIssuer, req.Username, h.tokenDuration, h.signKey)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "Bearer"})
}

func (h *Handler) getServerVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(h.version))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
