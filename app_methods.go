package plume

// Method represents the HTTP request method used for routing and handler dispatch.
type Method string

// String returns the string representation of a Method for logging and debugging.
func (m Method) String() string {
	return string(m)
}

// HTTP method constants covering every verb the route table can bucket.
const (
	Get     Method = "GET"
	Post    Method = "POST"
	Put     Method = "PUT"
	Patch   Method = "PATCH"
	Delete  Method = "DELETE"
	Head    Method = "HEAD"
	Options Method = "OPTIONS"
	Trace   Method = "TRACE"
)

// Methods maps raw method text to its typed value. The request parser looks
// method text up here case-sensitively; text that is not present falls back
// to Get rather than failing the request.
var Methods = map[string]Method{
	"GET":     Get,
	"POST":    Post,
	"PUT":     Put,
	"PATCH":   Patch,
	"DELETE":  Delete,
	"HEAD":    Head,
	"OPTIONS": Options,
	"TRACE":   Trace,
}
