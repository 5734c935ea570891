// Package api exposes the rule engine over HTTP. The three endpoints
// mirror the service operations: POST /create_rule, POST /combine_rules
// and POST /evaluate_rule. Core errors are surfaced verbatim, with their
// kind and source offset, so a caller can correct a malformed rule string.
package api

import (
	"context"
	"io"
	"net/http"

	"github.com/valyala/fastjson"

	verdict "github.com/verdict-rules/verdict"
)

// Server handles the HTTP surface for a rule engine.
type Server struct {
	engine  *verdict.Engine
	parsers fastjson.ParserPool
	srv     *http.Server
}

func NewServer(engine *verdict.Engine) *Server {
	return &Server{engine: engine}
}

// Handler returns the route table for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/create_rule", s.handleCreateRule)
	mux.HandleFunc("/combine_rules", s.handleCombineRules)
	mux.HandleFunc("/evaluate_rule", s.handleEvaluateRule)
	return mux
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.srv = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}

// handleCreateRule parses and persists a rule:
//
//	POST /create_rule {"rule": "age >= 18", "name": "adults"}
//
// and responds with the stored rule, including its tree.
func (s *Server) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	v, release, ok := s.parseBody(w, r)
	if !ok {
		return
	}
	defer release()

	ruleText := string(v.GetStringBytes("rule"))
	name := string(v.GetStringBytes("name"))
	if ruleText == "" {
		writeErrorMessage(w, http.StatusBadRequest, kindBadRequest, `missing or empty "rule" field`)
		return
	}

	rule, err := s.engine.CreateRule(r.Context(), name, ruleText)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

// handleCombineRules merges several rule texts into one tree:
//
//	POST /combine_rules {"rules": ["age > 30 AND dept = 'Sales'", "salary > 50000"]}
//
// and responds with the merged tree. Nothing is persisted.
func (s *Server) handleCombineRules(w http.ResponseWriter, r *http.Request) {
	v, release, ok := s.parseBody(w, r)
	if !ok {
		return
	}
	defer release()

	items := v.GetArray("rules")
	exprs := make([]string, 0, len(items))
	for _, item := range items {
		exprs = append(exprs, string(item.GetStringBytes()))
	}

	root, err := s.engine.CombineRules(exprs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, root)
}

// handleEvaluateRule evaluates a stored rule against a data record:
//
//	POST /evaluate_rule {"rule_id": "1", "data": {"age": 20, "country": "US"}}
//
// and responds with {"result": true|false}. The rule id may be sent as a
// JSON string or number.
func (s *Server) handleEvaluateRule(w http.ResponseWriter, r *http.Request) {
	v, release, ok := s.parseBody(w, r)
	if !ok {
		return
	}
	defer release()

	id := ruleID(v.Get("rule_id"))
	if id == "" {
		writeErrorMessage(w, http.StatusBadRequest, kindBadRequest, `missing "rule_id" field`)
		return
	}

	data, err := recordFromJSON(v.Get("data"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, kindBadRequest, err.Error())
		return
	}

	result, err := s.engine.Evaluate(r.Context(), id, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"result": result})
}

// parseBody enforces POST, reads the body and parses it as JSON. On
// failure it writes the error response and returns ok=false. The returned
// value borrows the pooled parser; callers must invoke release when done
// with it.
func (s *Server) parseBody(w http.ResponseWriter, r *http.Request) (*fastjson.Value, func(), bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, nil, false
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, kindBadRequest, "failed to read body")
		return nil, nil, false
	}

	p := s.parsers.Get()
	v, err := p.ParseBytes(body)
	if err != nil {
		s.parsers.Put(p)
		writeErrorMessage(w, http.StatusBadRequest, kindBadRequest, "invalid JSON")
		return nil, nil, false
	}
	return v, func() { s.parsers.Put(p) }, true
}
