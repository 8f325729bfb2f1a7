package scrubber

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
)

type bodyKind uint8

const (
	bodyOther bodyKind = iota
	bodyJSON
	bodyForm
)

func classifyBody(contentType string) bodyKind {
	if contentType == "" {
		return bodyOther
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return bodyOther
	}
	switch {
	case mt == "application/json", strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"):
		return bodyJSON
	case mt == "application/x-www-form-urlencoded":
		return bodyForm
	default:
		return bodyOther
	}
}

// scrubBody replaces JSON and form bodies with their sanitized encoding.
// Other media types and empty bodies are left alone.
func scrubBody(r *http.Request, s *sanitizer.Sanitizer, limit int64) error {
	kind := classifyBody(r.Header.Get("Content-Type"))
	if kind == bodyOther || r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	data, err := readBody(r.Body, limit)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		setBody(r, data)
		return nil
	}

	var out []byte
	switch kind {
	case bodyJSON:
		out, err = scrubJSON(s, data)
	case bodyForm:
		out, err = scrubForm(s, data)
	}
	if err != nil {
		return err
	}
	setBody(r, out)
	return nil
}

func readBody(body io.ReadCloser, limit int64) ([]byte, error) {
	defer body.Close()
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	if int64(len(data)) > limit {
		return nil, ErrBodyTooLarge
	}
	return data, nil
}

func scrubJSON(s *sanitizer.Sanitizer, data []byte) ([]byte, error) {
	v, err := sanitizer.ParseJSON(data)
	if err != nil {
		if errors.Is(err, sanitizer.ErrMaxDepthExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	clean, err := s.Sanitize(v)
	if err != nil {
		return nil, err
	}
	return clean.MarshalJSON()
}

func scrubForm(s *sanitizer.Sanitizer, data []byte) ([]byte, error) {
	form, err := url.ParseQuery(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	clean, err := sanitizeValues(s, form)
	if err != nil {
		return nil, err
	}
	return []byte(clean.Encode()), nil
}

func setBody(r *http.Request, data []byte) {
	r.Body = io.NopCloser(bytes.NewReader(data))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	r.ContentLength = int64(len(data))
	r.Header.Set("Content-Length", strconv.Itoa(len(data)))
}
