package stompframe

import (
	"bytes"
	"strconv"
)

const (
	lf  = byte('\n')
	nul = byte(0)
	colon = byte(':')
)

// Parse decodes exactly one STOMP 1.2 frame from buf. Parse is total:
// it either returns a non-nil *Frame and a nil error, or a nil *Frame
// and a non-nil *ParseError. The returned Frame's Body aliases buf;
// callers must keep buf alive and unmodified for the Frame's lifetime.
// Header values are copied and do not alias buf.
//
// Trailing bytes after the terminating NUL are rejected
// (JunkAfterBody): this codec does not support pipelined frames in a
// single buffer.
func Parse(buf []byte) (*Frame, error) {
	cmdEnd := bytes.IndexByte(buf, lf)
	if cmdEnd < 0 {
		return nil, newParseError(KindMissingEolAfterCommand, len(buf))
	}
	cmdTok := string(buf[:cmdEnd])
	cmd, ok := validCommands[cmdTok]
	if !ok {
		return nil, newParseError(KindInvalidCommand, 0)
	}

	cursor := cmdEnd + 1
	headers := make(map[HeaderName]string)
	var headerKeys []HeaderName

	for {
		if cursor >= len(buf) {
			return nil, newParseError(KindMissingBlankLineAfterHeaders, cursor)
		}
		if buf[cursor] == lf {
			cursor++
			break
		}

		rest := buf[cursor:]
		colonIdx := bytes.IndexByte(rest, colon)
		lfIdx := bytes.IndexByte(rest, lf)

		if colonIdx < 0 || (lfIdx >= 0 && colonIdx > lfIdx) {
			return nil, newParseError(KindInvalidHeaderFormat, cursor)
		}
		if lfIdx < 0 {
			return nil, newParseError(KindMissingEolAfterHeaderValue, cursor)
		}

		keyBytes := rest[:colonIdx]
		valBytes := rest[colonIdx+1 : lfIdx]

		if len(keyBytes) == 0 {
			return nil, newParseError(KindInvalidEmptyKeyHeader, cursor)
		}
		if len(valBytes) == 0 {
			return nil, newParseError(KindInvalidEmptyValueHeader, cursor)
		}

		name, ok := validHeaders[string(keyBytes)]
		if !ok {
			return nil, newParseError(KindInvalidHeaderKey, cursor)
		}

		if _, dup := headers[name]; !dup {
			headers[name] = string(valBytes)
			headerKeys = append(headerKeys, name)
		}
		// Duplicate keys: first occurrence wins (STOMP 1.2 convention).

		cursor += lfIdx + 1
	}

	body := buf[cursor:]

	if contentLen, ok := headers[HeaderContentLength]; ok {
		if !isDecimalDigits(contentLen) {
			return nil, newParseError(KindInvalidContentLengthValueType, cursor)
		}
		n, err := strconv.Atoi(contentLen)
		if err != nil || n < 0 {
			return nil, newParseError(KindInvalidContentLengthValueType, cursor)
		}
		if n >= len(body) {
			return nil, newParseError(KindMissingNullAtEndOfBody, len(buf))
		}
		if body[n] != nul {
			// A NUL must terminate the body at exactly the declared length.
			return nil, newParseError(KindContentLengthMismatch, cursor+n)
		}
		after := body[n+1:]
		if len(after) > 0 {
			return nil, newParseError(KindJunkAfterBody, cursor+n+1)
		}
		bodyBytes := body[:n]
		return buildFrame(cmd, headers, headerKeys, bodyBytes)
	}

	nulIdx := bytes.IndexByte(body, nul)
	if nulIdx < 0 {
		return nil, newParseError(KindMissingNullAtEndOfBody, len(buf))
	}
	after := body[nulIdx+1:]
	if len(after) > 0 {
		return nil, newParseError(KindJunkAfterBody, cursor+nulIdx+1)
	}

	return buildFrame(cmd, headers, headerKeys, body[:nulIdx])
}

func isDecimalDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func buildFrame(cmd Command, headers map[HeaderName]string, keys []HeaderName, body []byte) (*Frame, error) {
	if missing := firstMissingRequired(cmd, headers); missing != "" {
		return nil, newParseError(KindMissingRequiredHeaders, 0)
	}
	return &Frame{
		Command:    cmd,
		Body:       body,
		headers:    headers,
		headerKeys: keys,
	}, nil
}

func firstMissingRequired(cmd Command, headers map[HeaderName]string) HeaderName {
	for _, name := range requiredHeaders[cmd] {
		if _, ok := headers[name]; !ok {
			return name
		}
	}
	return ""
}
