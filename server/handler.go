package server

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	tabledb "github.com/jacobpatterson1549/selene-azul/db/table"
	"github.com/jacobpatterson1549/selene-azul/game"
	"github.com/jacobpatterson1549/selene-azul/game/engine"
	"github.com/jacobpatterson1549/selene-azul/server/auth"
	"github.com/jacobpatterson1549/selene-azul/server/log"
	"github.com/jacobpatterson1549/selene-azul/server/table"
	"github.com/matryer/way"
)

type (
	contextKey int

	createTableRequest struct {
		Players []string    `json:"players"`
		Seed    *int64      `json:"seed,omitempty"`
		Rules   *game.Rules `json:"rules,omitempty"`
	}

	createTableResponse struct {
		ID     game.ID       `json:"id"`
		Tokens []string      `json:"tokens"`
		State  *engine.State `json:"state"`
	}

	tableResponse struct {
		ID     game.ID       `json:"id"`
		State  *engine.State `json:"state"`
		Winner int           `json:"winner"`
		Info   game.Info     `json:"info"`
	}

	legalMovesResponse struct {
		Turn  int           `json:"turn"`
		Moves []engine.Move `json:"moves"`
	}

	rulesResponse struct {
		Rules []string `json:"rules"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}
)

const (
	// HeaderContentType is used to set the document type header on http responses.
	HeaderContentType = "Content-Type"
	// HeaderAcceptEncoding is specified by the client to tell the server what types of document encoding it can handle.
	HeaderAcceptEncoding = "Accept-Encoding"
	// HeaderContentEncoding is used to tell clients how the document is encoded.
	HeaderContentEncoding = "Content-Encoding"
	// HeaderAuthorization holds the seat token of moves.
	HeaderAuthorization = "Authorization"
	// maxBodyBytes is the largest request body that is read.
	maxBodyBytes = 1 << 16
)

const (
	seatContextKey contextKey = iota + 1
)

// handler creates the router for the api endpoints.
func (cfg Config) handler(p Parameters) http.Handler {
	r := way.NewRouter()
	r.HandleFunc("POST", "/tables", createTableHandler(p.Runner, p.Tokenizer, cfg.SeedFunc, p.Logger))
	r.HandleFunc("GET", "/tables/:id", getTableHandler(p.Runner, p.Logger))
	r.HandleFunc("DELETE", "/tables/:id", authHandler(deleteTableHandler(p.Runner, p.Logger), p.Tokenizer, p.Logger))
	r.HandleFunc("GET", "/tables/:id/moves", legalMovesHandler(p.Runner, p.Logger))
	r.HandleFunc("POST", "/tables/:id/moves", authHandler(moveHandler(p.Runner, p.Logger), p.Tokenizer, p.Logger))
	r.HandleFunc("GET", "/rules", rulesHandler(p.Logger))
	r.HandleFunc("GET", "/monitor", monitorHandler(p.Runner, cfg.Version, cfg.useTLS()))
	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpError(w, http.StatusNotFound)
	})
	return gzipHandler(r)
}

// createTableHandler starts a game at a new table and gives each player a seat token.
func createTableHandler(runner TableRunner, tokenizer Tokenizer, seedFunc func() int64, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTableRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, err, log)
			return
		}
		seed := seedFunc()
		if req.Seed != nil {
			seed = *req.Seed
		}
		rules := game.DefaultRules()
		if req.Rules != nil {
			rules = *req.Rules
		}
		t, err := runner.Create(r.Context(), seed, rules, req.Players...)
		if err != nil {
			writeError(w, err, log)
			return
		}
		resp := createTableResponse{
			ID:     t.ID,
			Tokens: make([]string, len(t.State.Players)),
			State:  &t.State,
		}
		for i := range t.State.Players {
			s := auth.Seat{
				TableID: t.ID,
				Index:   i,
			}
			token, err := tokenizer.Create(s)
			if err != nil {
				writeError(w, fmt.Errorf("creating seat token: %w", err), log)
				return
			}
			resp.Tokens[i] = token
		}
		writeJSON(w, http.StatusCreated, resp, log)
	}
}

// getTableHandler writes the state of the table.
func getTableHandler(runner TableRunner, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := runner.Get(r.Context(), tableID(r))
		if err != nil {
			writeError(w, err, log)
			return
		}
		resp := tableResponse{
			ID:     t.ID,
			State:  &t.State,
			Winner: engine.WinnerIndex(&t.State),
			Info:   t.Info(),
		}
		writeJSON(w, http.StatusOK, resp, log)
	}
}

// legalMovesHandler writes the moves the player whose turn it is can make.
func legalMovesHandler(runner TableRunner, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := runner.Get(r.Context(), tableID(r))
		if err != nil {
			writeError(w, err, log)
			return
		}
		resp := legalMovesResponse{
			Turn:  t.State.TurnIndex,
			Moves: engine.LegalMoves(&t.State),
		}
		if resp.Moves == nil {
			resp.Moves = []engine.Move{}
		}
		writeJSON(w, http.StatusOK, resp, log)
	}
}

// moveHandler applies the move of the player whose seat token is on the request.
func moveHandler(runner TableRunner, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m engine.Move
		if err := decodeBody(w, r, &m); err != nil {
			writeError(w, err, log)
			return
		}
		s := r.Context().Value(seatContextKey).(auth.Seat)
		result, err := runner.Move(r.Context(), s.TableID, s.Index, m)
		if err != nil {
			writeError(w, err, log)
			return
		}
		writeJSON(w, http.StatusOK, result, log)
	}
}

// deleteTableHandler removes the table of the seat token on the request.
func deleteTableHandler(runner TableRunner, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := r.Context().Value(seatContextKey).(auth.Seat)
		if err := runner.Delete(r.Context(), s.TableID); err != nil {
			writeError(w, err, log)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// rulesHandler writes the text of the default rules.
func rulesHandler(log log.Logger) http.HandlerFunc {
	resp := rulesResponse{
		Rules: game.DefaultRules().Text(),
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resp, log)
	}
}

// authHandler checks the seat token of the request is for the table in the path before running the child handler.
func authHandler(h http.HandlerFunc, tokenizer Tokenizer, log log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := readSeat(r, tokenizer)
		if err != nil {
			log.Printf("%v", err)
			httpError(w, http.StatusForbidden)
			return
		}
		ctx := context.WithValue(r.Context(), seatContextKey, *s)
		h(w, r.WithContext(ctx))
	}
}

// readSeat retrieves the seat in the authorization header.
func readSeat(r *http.Request, tokenizer Tokenizer) (*auth.Seat, error) {
	authorization := r.Header.Get(HeaderAuthorization)
	tokenString, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || len(tokenString) == 0 {
		return nil, fmt.Errorf("invalid authorization header: %q", authorization)
	}
	s, err := tokenizer.Read(tokenString)
	if err != nil {
		return nil, fmt.Errorf("reading seat token: %w", err)
	}
	if id := tableID(r); s.TableID != id {
		return nil, fmt.Errorf("seat token for table %v used for table %v", s.TableID, id)
	}
	return s, nil
}

// tableID is the id of the table in the path of the request.
func tableID(r *http.Request) game.ID {
	return game.ID(way.Param(r.Context(), "id"))
}

// decodeBody reads the json request body into the value.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	d := json.NewDecoder(body)
	d.DisallowUnknownFields()
	if err := d.Decode(v); err != nil {
		return decodeError{err: err}
	}
	return nil
}

// decodeError is a problem reading a request body.
type decodeError struct {
	err error
}

func (e decodeError) Error() string {
	return "decoding request: " + e.err.Error()
}

func (e decodeError) Unwrap() error {
	return e.err
}

// writeJSON writes the value as the json response body.
func writeJSON(w http.ResponseWriter, statusCode int, v any, log log.Logger) {
	w.Header().Set(HeaderContentType, "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}

// writeError writes the error with a status code for its cause.  Unexpected errors are logged.
func writeError(w http.ResponseWriter, err error, log log.Logger) {
	var rv game.RuleViolation
	var de decodeError
	statusCode := http.StatusInternalServerError
	switch {
	case errors.As(err, &rv):
		statusCode = http.StatusConflict
	case tabledb.IsNotFound(err):
		statusCode = http.StatusNotFound
	case errors.As(err, &de), errors.Is(err, table.ErrInvalid):
		statusCode = http.StatusBadRequest
	case errors.Is(err, table.ErrFull):
		statusCode = http.StatusServiceUnavailable
	default:
		log.Printf("server error: %v", err)
		httpError(w, statusCode)
		return
	}
	writeJSON(w, statusCode, errorResponse{Error: err.Error()}, log)
}

// httpError writes the error status code.
func httpError(w http.ResponseWriter, statusCode int) {
	http.Error(w, http.StatusText(statusCode), statusCode)
}

// gzipHandler compresses responses for clients that accept gzip encoding.
func gzipHandler(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get(HeaderAcceptEncoding), "gzip") {
			w2 := gzip.NewWriter(w)
			defer w2.Close()
			w = wrappedResponseWriter{
				Writer:         w2,
				ResponseWriter: w,
			}
			w.Header().Add(HeaderContentEncoding, "gzip")
		}
		h.ServeHTTP(w, r)
	}
}

// wrappedResponseWriter wraps response writing with another writer.
type wrappedResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

// Write delegates the write to the wrapped writer.
func (wrw wrappedResponseWriter) Write(p []byte) (n int, err error) {
	return wrw.Writer.Write(p)
}
