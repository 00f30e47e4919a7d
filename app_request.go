package plume

import (
	"bytes"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Request carries everything a handler needs for one dispatch: the shared
// state handle, the wildcard bindings from the matched pattern, the parsed
// query arguments, the raw body, and the connection itself. The connection
// is owned by the in-flight dispatch and must not be retained after the
// handler returns.
type Request[SharedData any] struct {
	SharedData *SharedState[SharedData]
	Params     map[string]string
	Args       map[string]string
	Body       []byte
	Conn       net.Conn
}

// Handler processes one dispatched request and returns the response to
// encode. Handlers are ordinary closures owned by the route table; nothing
// requires them to outlive the server.
type Handler[SharedData any] func(Request[SharedData]) Response

// Param returns the wildcard binding for name, or nil if the matched pattern
// had no such wildcard.
func (req *Request[SharedData]) Param(name string) *string {
	val, ok := req.Params[name]
	if !ok {
		return nil
	}
	return &val
}

// ParamUUID returns the wildcard binding for name parsed as a UUID.
// Returns nil if the binding is missing or not a valid UUID.
func (req *Request[SharedData]) ParamUUID(name string) *uuid.UUID {
	val, ok := req.Params[name]
	if !ok {
		return nil
	}
	g, err := uuid.Parse(val)
	if err != nil {
		return nil
	}
	return &g
}

// ArgString returns the query argument for key, or nil if absent.
func (req *Request[SharedData]) ArgString(key string) *string {
	val, ok := req.Args[key]
	if !ok {
		return nil
	}
	return &val
}

// ArgInt32 returns the query argument for key as an int32.
// Returns nil if the argument is missing or cannot be parsed.
func (req *Request[SharedData]) ArgInt32(key string) *int32 {
	val, ok := req.Args[key]
	if ok {
		num, err := strconv.Atoi(val)
		if err == nil {
			v := int32(num)
			return &v
		}
	}
	return nil
}

// ArgInt64 returns the query argument for key as an int64.
// Returns nil if the argument is missing or cannot be parsed.
func (req *Request[SharedData]) ArgInt64(key string) *int64 {
	val, ok := req.Args[key]
	if ok {
		num, err := strconv.ParseInt(val, 10, 64)
		if err == nil {
			return &num
		}
	}
	return nil
}

// ArgUUID returns the query argument for key parsed and validated as a UUID.
// Returns nil if the argument is missing or not a valid UUID.
func (req *Request[SharedData]) ArgUUID(key string) *uuid.UUID {
	val, ok := req.Args[key]
	if !ok {
		return nil
	}
	g, err := uuid.Parse(val)
	if err != nil {
		return nil
	}
	return &g
}

// DecodeJSON unmarshals the request body into v.
func (req *Request[SharedData]) DecodeJSON(v any) error {
	return json.Unmarshal(req.Body, v)
}

var errMalformedRequest = errors.New("malformed request head")

// parsedRequest is the wire-level result of parsing one connection's bytes,
// before a route is resolved. Headers are consumed during parsing but not
// forwarded to handlers.
type parsedRequest struct {
	method  Method
	path    string
	args    map[string]string
	headers map[string]string
	body    []byte
}

// parseRequest turns the accumulated raw bytes of one connection into a
// parsedRequest. Bytes after the first blank line are the body, verbatim.
// Returns errMalformedRequest when no method, path, or header line can be
// identified; the caller answers that with a fixed 500 line and never
// dispatches a handler.
func parseRequest(data []byte) (*parsedRequest, error) {
	head := data
	var body []byte
	if i := bytes.Index(data, []byte("\r\n\r\n")); i > -1 {
		head = data[:i]
		body = data[i+4:]
	}

	lines := strings.Split(string(head), "\r\n")
	fields := strings.Split(lines[0], " ")
	if len(fields) < 2 {
		return nil, errMalformedRequest
	}

	headers := make(map[string]string)
	for _, line := range lines[1:] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[key] = strings.TrimPrefix(value, " ")
	}
	if len(headers) == 0 {
		return nil, errMalformedRequest
	}

	// Unrecognized method text is a documented leniency: fall back to GET.
	method, ok := Methods[fields[0]]
	if !ok {
		method = Get
	}

	path := fields[1]
	args := map[string]string{}
	if p, query, found := strings.Cut(path, "?"); found {
		path = p
		args = parseQuery(query)
	}

	return &parsedRequest{
		method:  method,
		path:    path,
		args:    args,
		headers: headers,
		body:    body,
	}, nil
}

// parseQuery splits a query string on '&', then each token on '='. Tokens
// without both a name and a value are dropped; later duplicate keys
// overwrite earlier ones. Values past a second '=' are discarded, so
// "a=b=c" binds "a" to "b".
func parseQuery(query string) map[string]string {
	args := make(map[string]string)
	for _, token := range strings.Split(query, "&") {
		parts := strings.Split(token, "=")
		if len(parts) < 2 {
			continue
		}
		args[parts[0]] = parts[1]
	}
	return args
}
