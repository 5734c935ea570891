package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/valyala/fastjson"

	verdict "github.com/verdict-rules/verdict"
	"github.com/verdict-rules/verdict/ruleql"
)

// Error kind identifiers used in responses.
const (
	kindLexError      = "lex_error"
	kindParseError    = "parse_error"
	kindCombineError  = "combine_error"
	kindEvalError     = "eval_error"
	kindUnknownRuleID = "unknown_rule_id"
	kindBadRequest    = "bad_request"
	kindInternal      = "internal_error"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
	Offset *int   `json:"offset,omitempty"`
}

// writeError maps a core error onto a status code and structured body.
// Lex, parse and combine errors are the caller's fault (400); a missing
// rule id is 404; evaluation errors are 422 so that a malformed data
// record is distinguishable from a malformed request.
func writeError(w http.ResponseWriter, err error) {
	var lexErr *ruleql.LexError
	var parseErr *ruleql.ParseError
	var combineErr *ruleql.CombineError
	var evalErr *ruleql.EvalError

	switch {
	case errors.As(err, &lexErr):
		writeJSON(w, http.StatusBadRequest, wrap(errorBody{
			Kind:   kindLexError,
			Detail: err.Error(),
			Offset: &lexErr.Offset,
		}))
	case errors.As(err, &parseErr):
		writeJSON(w, http.StatusBadRequest, wrap(errorBody{
			Kind:   kindParseError,
			Detail: err.Error(),
			Offset: &parseErr.Offset,
		}))
	case errors.As(err, &combineErr):
		writeJSON(w, http.StatusBadRequest, wrap(errorBody{
			Kind:   kindCombineError,
			Detail: err.Error(),
		}))
	case errors.Is(err, verdict.ErrRuleNotFound):
		writeJSON(w, http.StatusNotFound, wrap(errorBody{
			Kind:   kindUnknownRuleID,
			Detail: err.Error(),
		}))
	case errors.As(err, &evalErr):
		writeJSON(w, http.StatusUnprocessableEntity, wrap(errorBody{
			Kind:   kindEvalError,
			Detail: err.Error(),
		}))
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, wrap(errorBody{
			Kind:   kindInternal,
			Detail: "internal error",
		}))
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, kind, detail string) {
	writeJSON(w, status, wrap(errorBody{Kind: kind, Detail: detail}))
}

func wrap(b errorBody) map[string]errorBody {
	return map[string]errorBody{"error": b}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("JSON encode error: %v", err)
	}
}

// ruleID extracts the rule id from a JSON value that may be a string or a
// number. The original clients sent integer ids; string ids are accepted
// for symmetry with the store.
func ruleID(v *fastjson.Value) string {
	if v == nil {
		return ""
	}
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		return strconv.FormatInt(v.GetInt64(), 10)
	default:
		return ""
	}
}

// recordFromJSON converts a JSON object into an evaluation record. Only
// scalar attribute values are meaningful to the evaluator, so nested
// objects, arrays and nulls are rejected.
func recordFromJSON(v *fastjson.Value) (ruleql.Record, error) {
	data := ruleql.Record{}
	if v == nil {
		return data, nil
	}
	obj, err := v.Object()
	if err != nil {
		return nil, fmt.Errorf(`"data" must be an object`)
	}

	var badKey string
	obj.Visit(func(key []byte, val *fastjson.Value) {
		switch val.Type() {
		case fastjson.TypeString:
			data[string(key)] = string(val.GetStringBytes())
		case fastjson.TypeNumber:
			data[string(key)] = val.GetFloat64()
		case fastjson.TypeTrue:
			data[string(key)] = true
		case fastjson.TypeFalse:
			data[string(key)] = false
		default:
			if badKey == "" {
				badKey = string(key)
			}
		}
	})
	if badKey != "" {
		return nil, fmt.Errorf("attribute %q must be a number, string or boolean", badKey)
	}
	return data, nil
}
