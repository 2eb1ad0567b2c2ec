/*
Package server implements msgpack IPC for anagram solving.

The server reads msgpack messages from stdin and writes one msgpack response per
request to stdout. Logs go to stderr so they never interleave with responses.

# IPC

On start the server announces itself:

	{"status": "ready"}

Solve requests carry the query letters and an optional result limit:

	{"id": "req_001", "q": "tca", "l": 10}

The response lists matching words, longest combinations first, with the time
taken in microseconds. "c" counts the returned words, "n" counts all matches
before the limit was applied:

	{"id": "req_001", "w": ["cat", "act", "at"], "c": 3, "n": 3, "t": 41}

Other actions:

	{"id": "i1", "action": "info"}
	{"id": "h1", "action": "health"}

A request without an id gets a generated one, echoed back in the response.

# Errors

Failures are reported per request and never stop the server:

	{"id": "req_002", "e": "query exceeds maximum length of 20 letters", "c": 413}

Codes: 400 malformed request or unknown action, 408 solve timed out,
413 query too long.

# Limits

Solving is exponential in the query length (see package combo), so the server
caps query length and solve time through the [server] config section.
*/
package server

// Request is any client message. Action selects the operation; empty means "solve".
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Query  string `msgpack:"q,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// SolveResponse carries the words found for a query
type SolveResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"w"`
	Count     int      `msgpack:"c"`
	Total     int      `msgpack:"n"`
	TimeTaken int64    `msgpack:"t"`
}

// InfoResponse describes the loaded dictionary and server limits
type InfoResponse struct {
	ID             string `msgpack:"id"`
	Status         string `msgpack:"status"`
	Words          int    `msgpack:"words"`
	Keys           int    `msgpack:"keys"`
	MinWordLength  int    `msgpack:"min_word_length"`
	MaxWordLength  int    `msgpack:"max_word_length"`
	MaxQueryLength int    `msgpack:"max_query_length"`
	// WorstCase is the combination count of a maximum length query, as a decimal string
	WorstCase string `msgpack:"worst_case"`
}

// StatusResponse answers health checks and announces readiness
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

const (
	CodeBadRequest    = 400
	CodeTimeout       = 408
	CodeQueryTooLarge = 413
)
