package plume

// ErrorKind tags an Error response with the failure it represents. The kind
// never reaches the wire: the encoder answers every Error response with the
// generic 500 line regardless of tag.
type ErrorKind int

const (
	BadRequest          ErrorKind = 400
	NotFound            ErrorKind = 404
	InternalServerError ErrorKind = 500
)

var errorKindDescriptions = map[ErrorKind]string{
	BadRequest:          "Bad Request",
	NotFound:            "Not Found",
	InternalServerError: "Internal Server Error",
}

func (k ErrorKind) String() string {
	return errorKindDescriptions[k]
}
