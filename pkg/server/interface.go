/*
Package server implements msgpack IPC for language statistics.

The server reads msgpack maps from stdin and writes one msgpack map per
request to stdout. Logs go to stderr so they never interleave with frames.

# IPC

Every request carries an ID and an action. The remaining fields depend on the
action:

	{"id": "r1", "action": "cost", "text": "attackatdawn", "n": 4}
	{"id": "r2", "action": "contains", "words": ["hello", "wrld"]}
	{"id": "r3", "action": "ioc", "text": "LXFOPVEFRNHR"}
	{"id": "r4", "action": "complete", "p": "hel", "l": 5}
	{"id": "r5", "action": "info"}

Responses echo the ID:

	{"id": "r1", "c": 812.4, "n": 4, "s": 12, "t": 31}
	{"id": "r2", "r": [true, false], "t": 4}

A failed request is answered with an error frame and the loop goes on:

	{"id": "r1", "e": "unsupported gram order 9 (supported: 1..6)", "code": 400}

The server is ready once it has written {"status": "ready"}. EOF on stdin
ends the loop.

# Costs

Text is upper-cased and mapped onto the model alphabet before scoring;
symbols outside the alphabet are dropped. Models come from a shared
langstats.Cache, so they are loaded and normalized once and read-only
afterwards.
*/
package server

import "github.com/bastiangx/langstats/pkg/suggest"

// Actions understood by the server.
const (
	ActionCost     = "cost"
	ActionContains = "contains"
	ActionIoC      = "ioc"
	ActionComplete = "complete"
	ActionInfo     = "info"
	ActionHealth   = "health"
)

// Request is a single IPC request. Fields not used by the action are ignored.
type Request struct {
	ID       string   `msgpack:"id"`
	Action   string   `msgpack:"action"`
	Language string   `msgpack:"lang,omitempty"`
	Text     string   `msgpack:"text,omitempty"`
	Order    int      `msgpack:"n,omitempty"`
	Words    []string `msgpack:"words,omitempty"`
	// Exact restricts contains to complete words instead of stored prefixes.
	Exact  bool   `msgpack:"x,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// CostResponse answers a cost request. Symbols is the number of text runes
// that mapped onto the alphabet.
type CostResponse struct {
	ID        string  `msgpack:"id"`
	Cost      float64 `msgpack:"c"`
	Order     int     `msgpack:"n"`
	Symbols   int     `msgpack:"s"`
	TimeTaken int64   `msgpack:"t"`
}

// ContainsResponse holds one result per requested word.
type ContainsResponse struct {
	ID        string `msgpack:"id"`
	Results   []bool `msgpack:"r"`
	TimeTaken int64  `msgpack:"t"`
}

// IoCResponse answers an ioc request.
type IoCResponse struct {
	ID        string  `msgpack:"id"`
	IoC       float64 `msgpack:"ioc"`
	TimeTaken int64   `msgpack:"t"`
}

// CompletionResponse answers a complete request.
type CompletionResponse struct {
	ID          string               `msgpack:"id"`
	Suggestions []suggest.Suggestion `msgpack:"s"`
	Count       int                  `msgpack:"c"`
	TimeTaken   int64                `msgpack:"t"`
}

// InfoResponse describes what the server has loaded for a language.
type InfoResponse struct {
	ID        string `msgpack:"id"`
	Language  string `msgpack:"lang"`
	Name      string `msgpack:"name,omitempty"`
	Alphabet  string `msgpack:"alphabet"`
	UseSpaces bool   `msgpack:"spaces"`
	Orders    []int  `msgpack:"orders"`
	Words     int    `msgpack:"words"`
}

// StatusResponse signals readiness and answers health checks.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"code"`
}
