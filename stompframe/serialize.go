package stompframe

import "bytes"

// Serialize is the inverse of Parse: it renders f back onto the wire.
// The monitor uses it to build the CONNECT and SUBSCRIBE frames it
// sends, and the round-trip property tests exercise it against Parse.
func Serialize(f *Frame) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(string(f.Command))
	buf.WriteByte(lf)

	for _, name := range f.headerKeys {
		buf.WriteString(string(name))
		buf.WriteByte(colon)
		buf.WriteString(f.headers[name])
		buf.WriteByte(lf)
	}
	buf.WriteByte(lf)
	buf.Write(f.Body)
	buf.WriteByte(nul)

	return buf.Bytes(), nil
}
