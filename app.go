// Package plume is a minimal embeddable HTTP server built directly on TCP.
// It accepts raw connections, parses them into structured requests, routes
// each request to a registered handler by method and path pattern, and
// serializes the handler's typed result back onto the wire.
//
// The surface is deliberately small: a fluent builder that registers
// handlers and listens, pattern routes with "{name}" wildcards, a tagged
// response value with a fixed content-type table, and a single lock-guarded
// shared state value visible to every handler. There is no TLS, keep-alive,
// chunked transfer, compression, or connection limit.
//
// Example usage:
//
//	plume.New[[]string]("127.0.0.1:8000", nil).
//	    Register("/", plume.Get, func(req plume.Request[[]string]) plume.Response {
//	        return plume.HTML("<h1>Hello, World!</h1>")
//	    }).
//	    Register("/items/{id}", plume.Get, func(req plume.Request[[]string]) plume.Response {
//	        return plume.JSON(map[string]string{"id": req.Params["id"]})
//	    }).
//	    Listen(false)
//
// Registering the literal pattern "404" for GET installs the conventional
// not-found fallback: any request that matches no route is retried against
// it before the bare 404 line is written.
package plume

import (
	"errors"
	"fmt"
	"log"
	"net"

	"github.com/pkg/browser"
)

// WebService is the server under construction: a bind address, the route
// table, and the shared state container created from the initial value.
type WebService[SharedData any] struct {
	addr   string
	routes *router[SharedData]
	state  *SharedState[SharedData]
}

// New creates a WebService bound to addr with the given initial shared
// state. The state value is created once here and lives for the server's
// lifetime; handlers reach it through the request's SharedData handle.
func New[SharedData any](addr string, initial SharedData) *WebService[SharedData] {
	return &WebService[SharedData]{
		addr:   addr,
		routes: newRouter[SharedData](),
		state:  NewSharedState(initial),
	}
}

// Register appends a handler for (method, pattern) and returns the service
// for chaining. Registration order is match priority: within one method the
// first structurally compatible pattern wins.
func (ws *WebService[SharedData]) Register(pattern string, method Method, handler Handler[SharedData]) *WebService[SharedData] {
	ws.routes.register(method, pattern, handler)
	return ws
}

// Listen binds the TCP address and runs the accept loop forever. When
// openInBrowser is true the bound address is opened in the local browser on
// a best-effort basis; failure to open it is ignored. Panics if the address
// cannot be bound.
func (ws *WebService[SharedData]) Listen(openInBrowser bool) {
	listener, err := net.Listen("tcp", ws.addr)
	if err != nil {
		panic(err)
	}
	url := fmt.Sprintf("http://%s", ws.addr)
	if openInBrowser {
		_ = browser.OpenURL(url)
	}
	log.Printf("Listening on %s", url)
	ws.printRoutes()
	ws.serve(listener)
}

// serve accepts connections until the listener is closed. Each accepted
// connection's parse-dispatch-encode pipeline runs on its own goroutine; the
// accept loop never waits on a handler, so in-flight connections are bounded
// only by the scheduler and memory.
func (ws *WebService[SharedData]) serve(listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			panic(err)
		}
		go ws.handleConn(conn)
	}
}

// handleConn owns one connection end to end: read raw bytes, parse, resolve
// a route, invoke the handler at most once, encode the result, close.
//
// Parse failures answer the fixed 500 line without dispatching. A miss in
// the route table is retried once as (GET, "404"); if that also misses, the
// bare 404 line is written. A handler panic is contained to this connection
// and answered with the fixed 500 line.
func (ws *WebService[SharedData]) handleConn(conn net.Conn) {
	defer conn.Close()

	data := readRequestBytes(conn)
	request, err := parseRequest(data)
	if err != nil {
		writeAll(conn, []byte(rawInternalError))
		return
	}

	handler, params := ws.routes.find(request.method, request.path)
	if handler == nil {
		handler, params = ws.routes.find(Get, notFoundPattern)
	}
	if handler == nil {
		writeAll(conn, []byte(rawNotFound))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("handler panic on %s %s: %v", request.method, request.path, r)
			writeAll(conn, []byte(rawInternalError))
		}
	}()

	response := handler(Request[SharedData]{
		SharedData: ws.state,
		Params:     params,
		Args:       request.args,
		Body:       request.body,
		Conn:       conn,
	})
	response.write(conn)
}

// notFoundPattern is the conventional fallback route. It is an ordinary GET
// pattern with no special syntax and participates in the same ordered scan
// as every other pattern.
const notFoundPattern = "404"

// methodOrder fixes the method order of the startup route dump; bucket maps
// iterate randomly and the dump should not jitter between runs.
var methodOrder = []Method{Get, Post, Put, Patch, Delete, Head, Options, Trace}

// routeLines renders one "METHOD pattern" line per registered route, methods
// in methodOrder, patterns in registration order within each method.
func (ws *WebService[SharedData]) routeLines() []string {
	lines := []string{}
	for _, method := range methodOrder {
		for i := range ws.routes.buckets[method] {
			lines = append(lines, fmt.Sprintf("%v %v", method, ws.routes.buckets[method][i].pattern))
		}
	}
	return lines
}

// printRoutes dumps the registered routes at startup.
func (ws *WebService[SharedData]) printRoutes() {
	fmt.Printf("Registered routes:\n")
	for _, line := range ws.routeLines() {
		fmt.Printf("  %s\n", line)
	}
}
