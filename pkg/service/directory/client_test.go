package directory_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/telex-integrations/mention-notifier/pkg/domain/model"
	"github.com/telex-integrations/mention-notifier/pkg/service/directory"
)

func TestListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/channels/C1/users")
		gt.Equal(t, r.Header.Get("Authorization"), "Bearer api-token")

		gt.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{
					"email": "bob@co.com",
					"profile": map[string]any{
						"full_name": "Bob Builder",
						"username":  "bob",
					},
				},
				{
					"email": "carol@co.com",
					"profile": map[string]any{
						"full_name": "Carol",
						"username":  "carol",
					},
				},
			},
		}))
	}))
	defer srv.Close()

	client := directory.New(srv.URL, "api-token")

	members, err := client.ListUsers(context.Background(), "C1")
	gt.NoError(t, err)
	gt.Equal(t, len(members), 2)
	gt.Equal(t, members[0].Email, "bob@co.com")
	gt.Equal(t, members[0].DisplayName, "Bob Builder")
	gt.Equal(t, members[0].Username, "bob")
	gt.Equal(t, members[1].Email, "carol@co.com")
}

func TestListUsersEmptyChannel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": []any{}}))
	}))
	defer srv.Close()

	client := directory.New(srv.URL, "api-token")

	members, err := client.ListUsers(context.Background(), "C2")
	gt.NoError(t, err)
	gt.Equal(t, len(members), 0)
}

func TestListUsersFailures(t *testing.T) {
	t.Run("unexpected status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := directory.New(srv.URL, "bad-token")

		_, err := client.ListUsers(context.Background(), "C1")
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagDirectoryUnavailable))
	})

	t.Run("network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // nothing listens anymore

		client := directory.New(srv.URL, "api-token")

		_, err := client.ListUsers(context.Background(), "C1")
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagDirectoryUnavailable))
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		defer srv.Close()

		client := directory.New(srv.URL, "api-token")

		_, err := client.ListUsers(context.Background(), "C1")
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagDirectoryUnavailable))
	})
}
