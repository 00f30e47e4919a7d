package plume

import "net"

const chunkSize = 2048

// readRequestBytes accumulates the raw request from the connection by reading
// fixed-size chunks until a read comes back short. This treats a short chunk
// as end-of-stream instead of consulting Content-Length, so a body that is an
// exact multiple of the chunk size stalls until the peer closes.
func readRequestBytes(conn net.Conn) []byte {
	data := []byte{}
	for {
		chunk := make([]byte, chunkSize)
		n, err := conn.Read(chunk)
		if n > 0 {
			data = append(data, chunk[:n]...)
		}
		if err != nil || n < chunkSize {
			break
		}
	}
	return data
}
