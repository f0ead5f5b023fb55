package httputil

import (
	"net/http"
	"testing"
)

func TestParseProblem(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        *ProblemDetail
	}{
		{
			name:        "problem json",
			contentType: ContentType,
			body:        `{"type":"https://example.com/cdr/duplicate","title":"Conflict","status":409,"detail":"duplicate event"}`,
			want: &ProblemDetail{
				Type:   "https://example.com/cdr/duplicate",
				Title:  "Conflict",
				Status: http.StatusConflict,
				Detail: "duplicate event",
			},
		},
		{
			name:        "charset parameter",
			contentType: ContentType + "; charset=utf-8",
			body:        `{"title":"Bad Request","status":400}`,
			want:        &ProblemDetail{Type: "about:blank", Title: "Bad Request", Status: http.StatusBadRequest},
		},
		{
			name:        "plain json",
			contentType: "application/json",
			body:        `{"title":"Bad Request","status":400}`,
			want:        nil,
		},
		{
			name:        "malformed body",
			contentType: ContentType,
			body:        `{"title":`,
			want:        nil,
		},
		{
			name:        "empty content type",
			contentType: "",
			body:        `{}`,
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseProblem(tt.contentType, []byte(tt.body))
			if tt.want == nil {
				if got != nil {
					t.Errorf("ParseProblem() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("ParseProblem() = nil, want problem")
			}
			if *got != *tt.want {
				t.Errorf("ParseProblem() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProblemDetail_String(t *testing.T) {
	tests := []struct {
		name string
		p    ProblemDetail
		want string
	}{
		{"with detail", ProblemDetail{Title: "Conflict", Detail: "duplicate event"}, "Conflict: duplicate event"},
		{"title only", ProblemDetail{Title: "Bad Gateway"}, "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
