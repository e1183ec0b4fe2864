package mailinglist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chromamind/booth/internal/signup"
)

func TestListmonkSubscribePostsPublicSubscription(t *testing.T) {
	var got subscriptionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/public/subscription" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"has_optin":false}}`))
	}))
	defer srv.Close()

	l := NewListmonk(ListmonkConfig{BaseURL: srv.URL + "/", ListUUIDs: []string{"list-a", "list-b"}})
	out, err := l.Subscribe(context.Background(), signup.Fields{Name: "Ada", Email: "ada@example.com", AcceptTerms: true})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Success || out.Message != signup.MsgSuccess {
		t.Errorf("unexpected outcome %+v", out)
	}
	if got.Email != "ada@example.com" || got.Name != "Ada" {
		t.Errorf("unexpected subscriber %+v", got)
	}
	if len(got.ListUUIDs) != 2 || got.ListUUIDs[0] != "list-a" {
		t.Errorf("unexpected list uuids %v", got.ListUUIDs)
	}
}

func TestListmonkStatusHandling(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    signup.Outcome
		wantErr bool
	}{
		{name: "rejected with message", status: http.StatusBadRequest, body: `{"message":"Invalid email."}`, want: signup.Outcome{Message: "Invalid email."}},
		{name: "rejected without body", status: http.StatusUnprocessableEntity, want: signup.Outcome{}},
		{name: "server error", status: http.StatusBadGateway, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			l := NewListmonk(ListmonkConfig{BaseURL: srv.URL, ListUUIDs: []string{"x"}})
			out, err := l.Subscribe(context.Background(), signup.Fields{Name: "Ada", Email: "ada@example.com"})

			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && out != tt.want {
				t.Errorf("outcome = %+v, want %+v", out, tt.want)
			}
		})
	}
}

func TestListmonkWithoutEndpoint(t *testing.T) {
	l := NewListmonk(ListmonkConfig{})
	if _, err := l.Subscribe(context.Background(), signup.Fields{Name: "Ada", Email: "ada@example.com"}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestListmonkTruncatedRejectionIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "200")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Inv`))
	}))
	defer srv.Close()

	l := NewListmonk(ListmonkConfig{BaseURL: srv.URL, ListUUIDs: []string{"x"}})
	_, err := l.Subscribe(context.Background(), signup.Fields{Name: "Ada", Email: "ada@example.com"})

	if err == nil || !strings.Contains(err.Error(), "read listmonk response") {
		t.Errorf("expected read error, got %v", err)
	}
}
