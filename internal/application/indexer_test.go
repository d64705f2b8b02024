package application

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/event-portal/internal/domain/entity"
)

func TestAccountIndexer_DisabledIsNoop(t *testing.T) {
	var nilIndexer *AccountIndexer
	assert.NotPanics(t, func() {
		nilIndexer.IndexAccount(context.Background(), entity.AccountView{ID: "u1"})
		nilIndexer.DeleteAccount(context.Background(), "u1")
		NewAccountIndexer(nil, "accounts", nil).IndexAccount(context.Background(), entity.AccountView{ID: "u1"})
	})
}

func TestAccountIndexer_FailuresAreLogged(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad"}`))
	}))
	defer srv.Close()

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	x := NewAccountIndexer(es, "accounts", logger)
	x.IndexAccount(context.Background(), entity.AccountView{ID: "u1", Username: "alice"})
	x.DeleteAccount(context.Background(), "u1")

	assert.Equal(t, []string{"PUT /accounts/_doc/u1", "DELETE /accounts/_doc/u1"}, paths)
	assert.Contains(t, buf.String(), "es index response error")
	assert.Contains(t, buf.String(), "es delete response error")
}
