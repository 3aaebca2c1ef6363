package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/rl1809/ops-console/internal/core/domain"
)

const (
	maxBodySize    = 8 << 20
	maxExcerptSize = 256
)

// payload is what remains of a successful response once the envelope is peeled off.
type payload struct {
	status int
	// data is the raw JSON of the envelope's data member, empty when absent.
	data string
	msg  string
	// text holds a 2xx body that was not JSON at all.
	text   string
	isText bool
}

// open reads resp and applies the envelope rules shared by every endpoint.
// It always closes the body.
func open(resp *http.Response, op, fallback string) (payload, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return payload{}, &domain.Error{Kind: domain.KindTransport, Op: op, Status: resp.StatusCode, Msg: "failed to read response", Fallback: fallback, Err: err}
	}
	if len(raw) > maxBodySize {
		return payload{}, &domain.Error{Kind: domain.KindTransport, Op: op, Status: resp.StatusCode, Msg: "response too large", Fallback: fallback}
	}

	body := bytes.TrimSpace(raw)
	isJSON := len(body) > 0 && gjson.ValidBytes(body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return payload{}, statusError(resp.StatusCode, body, isJSON, op, fallback)
	}

	if !isJSON {
		return payload{status: resp.StatusCode, text: string(body), isText: true}, nil
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return payload{status: resp.StatusCode, data: root.Raw}, nil
	}

	code := root.Get("code")
	msg := message(root)
	if code.Exists() && code.Int() != 0 {
		return payload{}, &domain.Error{
			Kind:     domain.KindDomain,
			Op:       op,
			Status:   resp.StatusCode,
			Code:     int(code.Int()),
			Type:     root.Get("type").String(),
			Msg:      msg,
			Fallback: fallback,
		}
	}

	if data := root.Get("data"); data.Exists() {
		return payload{status: resp.StatusCode, data: data.Raw, msg: msg}, nil
	}
	if code.Exists() || msg != "" {
		return payload{status: resp.StatusCode, msg: msg}, nil
	}
	// Not an envelope: the backend answered directly.
	return payload{status: resp.StatusCode, data: root.Raw}, nil
}

func statusError(status int, body []byte, isJSON bool, op, fallback string) error {
	if !isJSON {
		return &domain.Error{
			Kind:     domain.KindTransport,
			Op:       op,
			Status:   status,
			Msg:      fmt.Sprintf("unexpected status %d", status),
			Fallback: fallback,
			Err:      fmt.Errorf("response body: %q", excerpt(body)),
		}
	}

	root := gjson.ParseBytes(body)
	e := &domain.Error{
		Kind:     domain.KindDomain,
		Op:       op,
		Status:   status,
		Code:     int(root.Get("code").Int()),
		Type:     root.Get("type").String(),
		Msg:      message(root),
		Fallback: fallback,
	}
	// The gateway itself answers these when it cannot reach a backend.
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		e.Kind = domain.KindTransport
	}
	return e
}

// message picks the diagnostic text; the gateway writes "message" where the
// envelope contract says "msg", and proxy failures use "error".
func message(root gjson.Result) string {
	for _, key := range []string{"msg", "message", "error"} {
		if v := root.Get(key); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

func excerpt(body []byte) string {
	if len(body) > maxExcerptSize {
		return string(body[:maxExcerptSize]) + "...(truncated)"
	}
	return string(body)
}

func isEmpty(data string) bool {
	return data == "" || data == "null"
}

// decodeRecord requires data to hold a single T.
func decodeRecord[T any](resp *http.Response, op, fallback string) (T, error) {
	var out T
	p, err := open(resp, op, fallback)
	if err != nil {
		return out, err
	}
	if p.isText {
		return out, malformed(op, fallback, p.status, fmt.Errorf("body is not JSON: %q", excerpt([]byte(p.text))))
	}
	if isEmpty(p.data) {
		return out, &domain.Error{Kind: domain.KindDomain, Op: op, Status: p.status, Msg: "empty response", Fallback: fallback, Err: errEmptyData}
	}
	if err := json.Unmarshal([]byte(p.data), &out); err != nil {
		return out, malformed(op, fallback, p.status, err)
	}
	return out, nil
}

// decodeList accepts a null or empty data member as zero rows; it never returns a nil slice on success.
func decodeList[T any](resp *http.Response, op, fallback string) ([]T, error) {
	p, err := open(resp, op, fallback)
	if err != nil {
		return nil, err
	}
	if p.isText {
		return nil, malformed(op, fallback, p.status, fmt.Errorf("body is not JSON: %q", excerpt([]byte(p.text))))
	}

	out := []T{}
	if isEmpty(p.data) {
		return out, nil
	}
	if err := json.Unmarshal([]byte(p.data), &out); err != nil {
		return nil, malformed(op, fallback, p.status, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// decodeAck accepts any successful body, including plain text.
func decodeAck(resp *http.Response, op, fallback string) (domain.Ack, error) {
	p, err := open(resp, op, fallback)
	if err != nil {
		return domain.Ack{}, err
	}
	switch {
	case p.isText:
		return domain.Ack{Message: p.text}, nil
	case gjson.Parse(p.data).Type == gjson.String:
		return domain.Ack{Message: gjson.Parse(p.data).Str}, nil
	case p.msg != "":
		return domain.Ack{Message: p.msg}, nil
	default:
		return domain.Ack{Message: "ok"}, nil
	}
}

func decodeStatus(resp *http.Response, op, fallback string) (struct{}, error) {
	_, err := open(resp, op, fallback)
	return struct{}{}, err
}

var errEmptyData = errors.New("envelope carries no data")

func malformed(op, fallback string, status int, err error) error {
	return &domain.Error{Kind: domain.KindTransport, Op: op, Status: status, Msg: "malformed response", Fallback: fallback, Err: err}
}
