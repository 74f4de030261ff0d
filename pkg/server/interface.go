/*
Package server implements msgpack IPC for word completion.

Clients write a stream of msgpack maps to stdin and read one msgpack map per request back from stdout.
Every request carries an id that is echoed in the response. Requests are handled one at a time in the
order they arrive.

A completion request names a prefix and an optional limit:

	{"id": "req_001", "p": "ca", "l": 3}

and is answered with the matching words in lexicographic order, their 1-based rank, the count and
the time taken in microseconds:

	{"id": "req_001", "s": [{"w": "car", "r": 1}, {"w": "cart", "r": 2}, {"w": "cat", "r": 3}], "c": 3, "t": 12}

Recent searches are managed with the action field:

	{"id": "h1", "action": "history_add", "term": "cart"}
	{"id": "h2", "action": "history_get"}
	{"id": "h3", "action": "history_clear"}

and {"id": "s1", "action": "stats"} reports the index size.

A request that cannot be served gets {"id": ..., "e": message, "c": code} and the server keeps going.
Only bytes that are not msgpack at all, or input that ends in the middle of a request, end the stream
with an error.
*/
package server

// Actions understood by the server. An empty action is a completion request.
const (
	ActionComplete     = "complete"
	ActionHistoryGet   = "history_get"
	ActionHistoryAdd   = "history_add"
	ActionHistoryClear = "history_clear"
	ActionStats        = "stats"
)

// Request is the envelope for every client message.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	Term   string `msgpack:"term,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// HistoryResponse answers the history actions with the list after the operation.
type HistoryResponse struct {
	ID     string   `msgpack:"id"`
	Status string   `msgpack:"status"`
	Items  []string `msgpack:"items"`
}

// StatsResponse reports index and traffic counters.
type StatsResponse struct {
	ID       string `msgpack:"id"`
	Status   string `msgpack:"status"`
	Words    int    `msgpack:"words"`
	Nodes    int    `msgpack:"nodes"`
	Requests int    `msgpack:"requests"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
