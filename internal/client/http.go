package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// File is a multipart upload part. ContentType is optional; resty falls
// back to sniffing when it is empty.
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// httpCaller carries actions over plain HTTP instead of the socket. It is
// the default transport and the only one that can move multipart bodies.
type httpCaller struct {
	client *resty.Client
}

func newHTTPCaller() *httpCaller {
	return &httpCaller{client: resty.New().SetTimeout(30 * time.Second)}
}

// actionPath turns an action name into its URL path: underscores separate
// path segments, so "resp_newFriendRequestEvent" becomes
// "resp/newFriendRequestEvent".
func actionPath(action string) string {
	return strings.ReplaceAll(action, "_", "/")
}

// call performs one HTTP API request and validates the response body the
// same way the socket path does.
func (h *httpCaller) call(ctx context.Context, cn *conn, action string, method CallMethod, params map[string]any, requireSession bool) (json.RawMessage, error) {
	if method == MethodMultipart && len(params) == 0 {
		return nil, ErrMultipartParams
	}

	var sessionKey string
	if requireSession {
		sessionKey = cn.getSessionKey()
		if sessionKey == "" {
			return nil, ErrNoSession
		}
	}

	url := cn.info.apiURL(actionPath(action))
	req := h.client.R().SetContext(ctx)

	var resp *resty.Response
	var err error
	switch method {
	case MethodGet:
		if sessionKey != "" {
			req.SetQueryParam("sessionKey", sessionKey)
		}
		for k, v := range encodeParams(params) {
			req.SetQueryParam(k, toQueryValue(v))
		}
		resp, err = req.Get(url)

	case MethodMultipart:
		if sessionKey != "" {
			req.SetFormData(map[string]string{"sessionKey": sessionKey})
		}
		if err := setMultipart(req, params); err != nil {
			return nil, err
		}
		resp, err = req.Post(url)

	default:
		body := encodeParams(params)
		if sessionKey != "" {
			body["sessionKey"] = sessionKey
		}
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
		resp, err = req.Post(url)
	}
	if err != nil {
		return nil, remoteError(err)
	}

	return validateHTTPBody(resp)
}

// validateHTTPBody checks that the backend produced a JSON body and runs it
// through the shared response validation.
func validateHTTPBody(resp *resty.Response) (json.RawMessage, error) {
	body := resp.Body()
	if len(body) == 0 {
		return nil, &MalformedResponseError{
			Reason:     "empty response body",
			StatusCode: resp.StatusCode(),
			Headers:    resp.Header(),
		}
	}
	if !json.Valid(body) {
		return nil, &MalformedResponseError{
			Reason:     "response body is not JSON",
			StatusCode: resp.StatusCode(),
			Headers:    resp.Header(),
			Content:    body,
		}
	}
	return ValidateResponse(body)
}

// setMultipart splits params into file parts, raw byte parts, scalar form
// fields, and structured values. Structured values (slices, maps, message
// chains) are sent as JSON parts because form encoding cannot represent
// them.
func setMultipart(req *resty.Request, params map[string]any) error {
	for k, v := range params {
		if v == nil {
			continue
		}
		switch val := v.(type) {
		case File:
			req.SetMultipartField(k, val.Name, val.ContentType, val.Reader)
		case *File:
			req.SetMultipartField(k, val.Name, val.ContentType, val.Reader)
		case []byte:
			req.SetMultipartField(k, "", "", bytes.NewReader(val))
		case string:
			req.SetFormData(map[string]string{k: val})
		default:
			if isStructured(v) {
				data, err := json.Marshal(v)
				if err != nil {
					return err
				}
				req.SetMultipartField(k, "", "application/json", strings.NewReader(string(data)))
				continue
			}
			req.SetFormData(map[string]string{k: toQueryValue(v)})
		}
	}
	return nil
}

// isStructured reports whether a value needs JSON encoding rather than a
// plain form field.
func isStructured(v interface{}) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct, reflect.Ptr:
		return true
	}
	return false
}

// toQueryValue renders a scalar parameter for query or form encoding.
func toQueryValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
