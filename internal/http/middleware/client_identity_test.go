package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"reviewpulse/internal/fingerprint"
	httpctx "reviewpulse/internal/http/ctx"
)

func runClientIdentity(t *testing.T, configure func(*fasthttp.Request)) (string, string) {
	t.Helper()

	var gotIP, gotFP string
	next := func(ctx *fasthttp.RequestCtx) {
		ip, ok := httpctx.ClientIPFromCtx(ctx)
		require.True(t, ok)
		fp, ok := httpctx.FingerprintFromCtx(ctx)
		require.True(t, ok)
		gotIP, gotFP = ip, fp
	}

	var ctx fasthttp.RequestCtx
	var req fasthttp.Request
	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI("/usage")
	configure(&req)
	ctx.Init(&req, nil, nil)

	ClientIdentity(next)(&ctx)
	return gotIP, gotFP
}

func TestClientIdentityStashesForwardedIP(t *testing.T) {
	ip, fp := runClientIdentity(t, func(req *fasthttp.Request) {
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		req.Header.Set("User-Agent", "Mozilla/5.0 (test)")
		req.Header.Set("Accept-Language", "en-US")
	})

	assert.Equal(t, "203.0.113.9", ip)
	assert.Equal(t, fingerprint.FromHeaders("Mozilla/5.0 (test)", "en-US"), fp)
}

func TestClientIdentityWithoutHeaders(t *testing.T) {
	ip, fp := runClientIdentity(t, func(req *fasthttp.Request) {
		req.Header.Del("User-Agent")
	})

	// No forwarded header: the transport peer address is used, and
	// missing fingerprint headers hash as empty strings.
	assert.NotEmpty(t, ip)
	assert.Equal(t, fingerprint.FromHeaders("", ""), fp)
}
