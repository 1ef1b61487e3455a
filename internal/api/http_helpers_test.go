package api

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "missing", header: "", want: ""},
		{name: "bearer", header: "Bearer abc.def", want: "abc.def"},
		{name: "case insensitive scheme", header: "bearer abc", want: "abc"},
		{name: "extra spaces", header: "  Bearer   abc  ", want: "abc"},
		{name: "basic scheme", header: "Basic YWRtaW4=", want: ""},
		{name: "scheme only", header: "Bearer", want: ""},
	}

	app := fiber.New()
	app.Get("/token", func(c *fiber.Ctx) error {
		return c.SendString(bearerToken(c))
	})

	for _, test := range tests {
		request := httptest.NewRequest("GET", "/token", nil)
		if test.header != "" {
			request.Header.Set("Authorization", test.header)
		}
		response, err := app.Test(request, -1)
		if err != nil {
			t.Fatalf("%s: request failed: %v", test.name, err)
		}
		body, err := io.ReadAll(response.Body)
		_ = response.Body.Close()
		if err != nil {
			t.Fatalf("%s: read body: %v", test.name, err)
		}
		if got := string(body); got != test.want {
			t.Fatalf("%s: bearerToken(%q) = %q, want %q", test.name, test.header, got, test.want)
		}
	}
}

func TestParseLimitQuery(t *testing.T) {
	t.Parallel()

	if limit, err := parseLimitQuery(""); err != nil || limit != 0 {
		t.Fatalf("expected empty limit to parse as 0, got %d, %v", limit, err)
	}
	if limit, err := parseLimitQuery(" 15 "); err != nil || limit != 15 {
		t.Fatalf("expected 15, got %d, %v", limit, err)
	}
	if _, err := parseLimitQuery("ten"); err == nil {
		t.Fatal("expected error for non-numeric limit")
	}
}
