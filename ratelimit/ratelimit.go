package ratelimit

import (
	"crypto/sha512"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lifeos/state"
)

// Bucket is a fixed-window ratelimit backed by redis, counted per hashed
// client IP.
type Bucket struct {
	BucketName string
	Requests   int
	Time       time.Duration
}

func bucketHandle(bucket Bucket, id string, w http.ResponseWriter) bool {
	rlKey := "rl:" + id + "-" + bucket.BucketName

	v := state.Redis.Get(state.Context, rlKey).Val()

	if v == "" {
		v = "0"

		err := state.Redis.Set(state.Context, rlKey, "0", bucket.Time).Err()

		if err != nil {
			state.Logger.Error(err)
			return false
		}
	}

	err := state.Redis.Incr(state.Context, rlKey).Err()

	if err != nil {
		state.Logger.Error(err)
		return false
	}

	vInt, err := strconv.Atoi(v)

	if err != nil {
		state.Logger.Error(err)
		return false
	}

	if vInt < 0 {
		state.Redis.Expire(state.Context, rlKey, 1*time.Second)
		vInt = 0
	}

	if vInt > bucket.Requests {
		retryAfter := state.Redis.TTL(state.Context, rlKey).Val()

		w.Header().Set("Retry-After", strconv.FormatFloat(retryAfter.Seconds(), 'g', -1, 64))
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("{\"message\":\"You're being rate limited!\",\"error\":true}"))

		return false
	}

	w.Header().Set("X-Ratelimit-Req-Made", strconv.Itoa(vInt))
	return true
}

// Ratelimit checks and increments the bucket for the requesting client. It
// writes the 429 response itself and returns false when the request should
// be dropped.
func Ratelimit(bucket Bucket, w http.ResponseWriter, r *http.Request) bool {
	remoteIp := strings.Split(strings.ReplaceAll(r.Header.Get("X-Forwarded-For"), " ", ""), ",")

	ip := remoteIp[0]

	if ip == "" {
		ip = r.RemoteAddr
	}

	// For user privacy, hash the remote ip
	hasher := sha512.New()
	hasher.Write([]byte(ip))
	id := fmt.Sprintf("%x", hasher.Sum(nil))

	return bucketHandle(bucket, id, w)
}

// Middleware wraps a handler with a bucket check.
func Middleware(bucket Bucket) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ok := Ratelimit(bucket, w, r); !ok {
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
