// Package ds generates the dynamic-security header value required by
// signed HoYoLAB endpoints (daily check-in claim, code redemption).
//
// The token is single-use: a unix timestamp, a short random string and an
// MD5 digest of both mixed with a fixed salt. The salt and the MD5 digest
// are dictated by the service's server-side verification and must not change.
package ds

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"time"
)

// Salt is the overseas web salt checked by the service.
const Salt = "6s25p5ox5y14umn1p61aqyyvbvvl3lrt"

const randomChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomLength is the length of the random component the service expects.
const randomLength = 6

// Generate returns a fresh "t,r,hash" dynamic-security token where
// hash = md5("salt=<Salt>&t=<t>&r=<r>").
func Generate() string {
	return generateAt(time.Now().Unix(), randomString(randomLength))
}

func generateAt(t int64, r string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("salt=%s&t=%d&r=%s", Salt, t, r)))
	return fmt.Sprintf("%d,%s,%x", t, r, sum)
}

func randomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = randomChars[rand.Intn(len(randomChars))]
	}
	return string(b)
}
