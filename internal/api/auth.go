package api

import (
	"bytes"
	"crypto/subtle"

	"github.com/valyala/fasthttp"
)

var bearerPrefix = []byte("Bearer ")

type tokenAuth struct {
	token []byte
}

func newTokenAuth(token string) authorizer {
	if token == "" {
		return nil
	}
	return tokenAuth{token: []byte(token)}
}

func (a tokenAuth) Authorize(req *fasthttp.Request) (bool, error) {
	header := req.Header.Peek(fasthttp.HeaderAuthorization)
	if !bytes.HasPrefix(header, bearerPrefix) {
		return false, nil
	}

	got := header[len(bearerPrefix):]
	return subtle.ConstantTimeCompare(got, a.token) == 1, nil
}
