package auth

import (
	"strconv"
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	now := time.Now().Unix()
	sig := Sign("s3cret", "POST", "/api/admin/rounds/run", now)

	if err := Verify("s3cret", "POST", "/api/admin/rounds/run",
		strconv.FormatInt(now, 10), sig); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	now := time.Now().Unix()
	ts := strconv.FormatInt(now, 10)
	sig := Sign("s3cret", "POST", "/api/admin/rounds/run", now)

	cases := []struct {
		name                            string
		secret, method, path, timestamp string
		sig                             string
	}{
		{"wrong secret", "other", "POST", "/api/admin/rounds/run", ts, sig},
		{"wrong method", "s3cret", "GET", "/api/admin/rounds/run", ts, sig},
		{"wrong path", "s3cret", "POST", "/api/admin/seasons", ts, sig},
		{"shifted timestamp", "s3cret", "POST", "/api/admin/rounds/run", strconv.FormatInt(now-1, 10), sig},
		{"garbled signature", "s3cret", "POST", "/api/admin/rounds/run", ts, sig[1:] + "0"},
		{"missing signature", "s3cret", "POST", "/api/admin/rounds/run", ts, ""},
		{"missing timestamp", "s3cret", "POST", "/api/admin/rounds/run", "", sig},
		{"junk timestamp", "s3cret", "POST", "/api/admin/rounds/run", "yesterday", sig},
	}
	for _, c := range cases {
		if err := Verify(c.secret, c.method, c.path, c.timestamp, c.sig); err == nil {
			t.Errorf("%s: verification should fail", c.name)
		}
	}
}

func TestVerifyRejectsStaleSignature(t *testing.T) {
	old := time.Now().Add(-10 * time.Minute).Unix()
	sig := Sign("s3cret", "GET", "/api/standings", old)
	if err := Verify("s3cret", "GET", "/api/standings",
		strconv.FormatInt(old, 10), sig); err == nil {
		t.Fatal("ten minute old signature should be rejected")
	}

	// A future timestamp outside the window is just as stale.
	future := time.Now().Add(10 * time.Minute).Unix()
	sig = Sign("s3cret", "GET", "/api/standings", future)
	if err := Verify("s3cret", "GET", "/api/standings",
		strconv.FormatInt(future, 10), sig); err == nil {
		t.Fatal("far future signature should be rejected")
	}
}
