package plume

import (
	"encoding/json"
	"net"
)

// responseKind discriminates the closed set of response variants.
type responseKind int

const (
	kindHTML responseKind = iota
	kindXML
	kindSVG
	kindJS
	kindJSON
	kindText
	kindCSS
	kindPNG
	kindJPG
	kindGIF
	kindWEBP
	kindError
)

// contentTypes statically associates each payload-carrying kind with its
// Content-Type header value. kindError is deliberately absent: an Error
// response has no content type and is answered with the fixed 500 line.
var contentTypes = map[responseKind]string{
	kindHTML: "text/html",
	kindXML:  "text/xml",
	kindSVG:  "image/svg+xml",
	kindJS:   "application/javascript",
	kindJSON: "application/json",
	kindText: "text/plain",
	kindCSS:  "text/css",
	kindPNG:  "image/png",
	kindJPG:  "image/jpeg",
	kindGIF:  "image/gif",
	kindWEBP: "image/webp",
}

// Fixed wire lines. Errors never carry their declared status code; the
// encoder always answers an Error response with the generic 500 line, and a
// request with no matching route and no registered "404" handler gets the
// bare 404 line.
const (
	rawInternalError = "HTTP/1.1 500 INTERNAL SERVER ERROR"
	rawNotFound      = "HTTP/1.1 404 NOT FOUND"
)

// Response is the tagged value a handler returns. Construct one with HTML,
// XML, SVG, JS, JSON, Text, CSS, PNG, JPG, GIF, WEBP, or Error; every
// successfully matched request produces exactly one Response and the encoder
// consumes it exactly once.
type Response struct {
	kind responseKind
	text string
	data []byte
	body any
	err  ErrorKind
}

// HTML creates a text/html response.
func HTML(body string) Response {
	return Response{kind: kindHTML, text: body}
}

// XML creates a text/xml response.
func XML(body string) Response {
	return Response{kind: kindXML, text: body}
}

// SVG creates an image/svg+xml response.
func SVG(body string) Response {
	return Response{kind: kindSVG, text: body}
}

// JS creates an application/javascript response.
func JS(body string) Response {
	return Response{kind: kindJS, text: body}
}

// JSON creates an application/json response. The value is serialized with
// standard JSON text encoding when the response is written; if serialization
// fails, the connection is answered with the fixed 500 line instead.
func JSON(value any) Response {
	return Response{kind: kindJSON, body: value}
}

// Text creates a text/plain response.
func Text(body string) Response {
	return Response{kind: kindText, text: body}
}

// CSS creates a text/css response.
func CSS(body string) Response {
	return Response{kind: kindCSS, text: body}
}

// PNG creates an image/png response from raw bytes.
func PNG(data []byte) Response {
	return Response{kind: kindPNG, data: data}
}

// JPG creates an image/jpeg response from raw bytes.
func JPG(data []byte) Response {
	return Response{kind: kindJPG, data: data}
}

// GIF creates an image/gif response from raw bytes.
func GIF(data []byte) Response {
	return Response{kind: kindGIF, data: data}
}

// WEBP creates an image/webp response from raw bytes.
func WEBP(data []byte) Response {
	return Response{kind: kindWEBP, data: data}
}

// Error creates a payload-free error response carrying only its kind. The
// kind stays server-side; the client always sees a generic 500 line.
func Error(kind ErrorKind) Response {
	return Response{kind: kindError, err: kind}
}

// write encodes the response onto the connection: one status line, one
// Content-Type header, a blank line, then the payload bytes. Successful
// dispatches always answer "HTTP/1.1 200 OK". Write failures are swallowed;
// the connection simply closes partially written.
func (r Response) write(conn net.Conn) {
	contentType, ok := contentTypes[r.kind]
	if !ok {
		writeAll(conn, []byte(rawInternalError))
		return
	}

	var payload []byte
	switch r.kind {
	case kindJSON:
		encoded, err := json.Marshal(r.body)
		if err != nil {
			writeAll(conn, []byte(rawInternalError))
			return
		}
		payload = encoded
	case kindPNG, kindJPG, kindGIF, kindWEBP:
		payload = r.data
	default:
		payload = []byte(r.text)
	}

	writeAll(conn, []byte("HTTP/1.1 200 OK\r\nContent-Type: "+contentType+"\r\n\r\n"))
	writeAll(conn, payload)
}

// writeAll pushes value onto the connection, retrying partial writes until
// everything is sent or the write fails.
func writeAll(conn net.Conn, value []byte) {
	written := 0
	for written < len(value) {
		n, err := conn.Write(value[written:])
		if err != nil {
			return
		}
		written += n
	}
}
