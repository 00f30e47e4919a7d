package plume

import (
	"io"
	"net"
	"strings"
	"testing"
)

func encode(t *testing.T, resp Response) string {
	t.Helper()
	client, server := net.Pipe()
	go func() {
		resp.write(server)
		server.Close()
	}()
	out, err := io.ReadAll(client)
	if err != nil {
		t.Fatalf("reading encoded response: %v", err)
	}
	return string(out)
}

func TestResponseEncoding(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{
			name: "html",
			resp: HTML("<h1>hi</h1>"),
			want: "HTTP/1.1 200 OK\r\nContent-Type: text/html\r\n\r\n<h1>hi</h1>",
		},
		{
			name: "json serialized with standard encoding",
			resp: JSON(map[string]string{"k": "v"}),
			want: "HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n{\"k\":\"v\"}",
		},
		{
			name: "binary written verbatim",
			resp: PNG([]byte{0x89, 'P', 'N', 'G', 0x00}),
			want: "HTTP/1.1 200 OK\r\nContent-Type: image/png\r\n\r\n\x89PNG\x00",
		},
		{
			name: "error kind never reaches the wire",
			resp: Error(BadRequest),
			want: rawInternalError,
		},
		{
			name: "unserializable json degrades to 500",
			resp: JSON(make(chan int)),
			want: rawInternalError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encode(t, tt.resp); got != tt.want {
				t.Errorf("encoded = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResponseSingleContentTypeHeader(t *testing.T) {
	out := encode(t, Text("plain"))
	if n := strings.Count(out, "Content-Type:"); n != 1 {
		t.Errorf("response carries %d Content-Type headers, want exactly 1", n)
	}
	if strings.Contains(out, "Content-Length") || strings.Contains(out, "Connection:") {
		t.Errorf("response carries extra headers: %q", out)
	}
}

func TestErrorKindDescriptions(t *testing.T) {
	if got := BadRequest.String(); got != "Bad Request" {
		t.Errorf("BadRequest.String() = %q", got)
	}
	if int(InternalServerError) != 500 {
		t.Errorf("InternalServerError = %d, want 500", int(InternalServerError))
	}
}
