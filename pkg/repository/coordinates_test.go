package repository

import (
	"encoding/base64"
	"testing"

	"github.com/matzehuels/mvnresolve/pkg/errors"
)

func TestNewCoordinatesTrailingSlash(t *testing.T) {
	tests := []struct {
		repo string
		want string
	}{
		{"https://repo.example.com/maven2", "https://repo.example.com/maven2/"},
		{"https://repo.example.com/maven2/", "https://repo.example.com/maven2/"},
	}
	for _, tt := range tests {
		if got := NewCoordinates(tt.repo, "g", "a").Repository; got != tt.want {
			t.Errorf("NewCoordinates(%q).Repository = %q, want %q", tt.repo, got, tt.want)
		}
	}
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name   string
		coords Coordinates
		want   string
	}{
		{
			name:   "dotted group",
			coords: NewCoordinates("https://repo.example.com/", "org.statendee", "maven-utils"),
			want:   "https://repo.example.com/org/statendee/maven-utils",
		},
		{
			name:   "underscores become hyphens",
			coords: NewCoordinates("https://repo.example.com/", "com.my_company.tools", "app"),
			want:   "https://repo.example.com/com/my-company/tools/app",
		},
		{
			name:   "repository without trailing slash",
			coords: Coordinates{Repository: "http://localhost:8080", GroupID: "test", ArtifactID: "test"},
			want:   "http://localhost:8080/test/test",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coords.BaseURL(); got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCoordinates(t *testing.T) {
	c, err := ParseCoordinates(DefaultRepository, "org.statendee:maven-utils")
	if err != nil {
		t.Fatalf("ParseCoordinates() failed: %v", err)
	}
	if c.GroupID != "org.statendee" || c.ArtifactID != "maven-utils" {
		t.Errorf("ParseCoordinates() = %+v", c)
	}
	if c.String() != "org.statendee:maven-utils" {
		t.Errorf("String() = %q", c.String())
	}

	bad := []string{"", "nocolon", "g:a:1.0", ":a", "g:", "g/../x:a"}
	for _, in := range bad {
		if _, err := ParseCoordinates(DefaultRepository, in); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ParseCoordinates(%q) error = %v, want INVALID_INPUT", in, err)
		}
	}

	if _, err := ParseCoordinates("ftp://repo.example.com/", "g:a"); err == nil {
		t.Error("ParseCoordinates() should reject non-http repositories")
	}
}

func TestCredentials(t *testing.T) {
	tests := []struct {
		creds Credentials
		valid bool
	}{
		{Credentials{}, false},
		{Credentials{Username: "user"}, false},
		{Credentials{Token: "tok"}, false},
		{Credentials{Username: "user", Token: "tok"}, true},
	}
	for _, tt := range tests {
		if got := tt.creds.Valid(); got != tt.valid {
			t.Errorf("%+v.Valid() = %v, want %v", tt.creds, got, tt.valid)
		}
	}

	c := Credentials{Username: "user", Token: "tok"}
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("user:tok"))
	if got := c.Header(); got != want {
		t.Errorf("Header() = %q, want %q", got, want)
	}
	if got := c.String(); got != "user:REDACTED" {
		t.Errorf("String() = %q", got)
	}
	if got := (Credentials{}).String(); got != "anonymous" {
		t.Errorf("String() = %q", got)
	}
}
