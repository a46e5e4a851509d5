package security

import (
	"errors"
	"net/http"

	"github.com/noah-isme/toko-promo/internal/common"
)

// CodePayloadTooLarge is the error code for rejected oversized bodies.
const CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"

// BodyLimit caps request bodies at Max bytes.
type BodyLimit struct {
	Max int64
}

// Middleware answers 413 when the declared length exceeds Max. Bodies with an
// unknown length are wrapped in http.MaxBytesReader, so handlers see an
// *http.MaxBytesError once they read past the limit.
func (b BodyLimit) Middleware(next http.Handler) http.Handler {
	if b.Max <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > b.Max {
			common.JSONError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "request body too large", nil)
			return
		}
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, b.Max)
		}
		next.ServeHTTP(w, r)
	})
}

// IsTooLarge reports whether err came from reading past a BodyLimit.
func IsTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
