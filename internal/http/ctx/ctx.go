package ctx

import (
	"github.com/valyala/fasthttp"
)

const (
	ClientIPKey    = "clientIP"
	FingerprintKey = "fingerprint"
)

func SetClientIP(ctx *fasthttp.RequestCtx, ip string) {
	ctx.SetUserValue(ClientIPKey, ip)
}

func ClientIPFromCtx(ctx *fasthttp.RequestCtx) (string, bool) {
	v := ctx.UserValue(ClientIPKey)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func SetFingerprint(ctx *fasthttp.RequestCtx, fp string) {
	ctx.SetUserValue(FingerprintKey, fp)
}

func FingerprintFromCtx(ctx *fasthttp.RequestCtx) (string, bool) {
	v := ctx.UserValue(FingerprintKey)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
