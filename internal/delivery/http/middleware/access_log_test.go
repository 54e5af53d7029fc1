package middleware

import "testing"

func TestRedactQuery(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/api/v1/jobs", "/api/v1/jobs"},
		{"/api/v1/jobs?status=Active&limit=20", "/api/v1/jobs?status=Active&limit=20"},
		{"/api/v1/ws/notifications?token=eyJhbGci", "/api/v1/ws/notifications?token=redacted"},
		{"/ws?a=1&token=secret&b=2", "/ws?a=1&token=redacted&b=2"},
		{"/ws?token=", "/ws?token=redacted"},
		{"/api/v1/auth/verify-email?token=abc&x=yz", "/api/v1/auth/verify-email?token=redacted&x=yz"},
	}
	for _, c := range cases {
		if got := redactQuery(c.in); got != c.want {
			t.Fatalf("redactQuery(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
