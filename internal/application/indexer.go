package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-portal/internal/domain/entity"
)

// AccountIndexer mirrors sanitized accounts into Elasticsearch.
// It is best-effort: a nil client disables it and failures are only logged.
type AccountIndexer struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewAccountIndexer(es *elasticsearch.Client, index string, logger *logrus.Logger) *AccountIndexer {
	return &AccountIndexer{ES: es, Index: index, Logger: logger}
}

func (x *AccountIndexer) enabled() bool {
	return x != nil && x.ES != nil && x.Index != ""
}

func (x *AccountIndexer) IndexAccount(ctx context.Context, v entity.AccountView) {
	if !x.enabled() {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		x.warn(err, v.ID, "es index encode failed")
		return
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: v.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	x.do(ctx, req, v.ID, "es index")
}

func (x *AccountIndexer) DeleteAccount(ctx context.Context, id string) {
	if !x.enabled() {
		return
	}
	x.do(ctx, esapi.DeleteRequest{Index: x.Index, DocumentID: id}, id, "es delete")
}

func (x *AccountIndexer) do(ctx context.Context, req esapi.Request, id, op string) {
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		x.warn(err, id, op+" failed")
		return
	}
	defer res.Body.Close()
	if res.IsError() && x.Logger != nil {
		x.Logger.WithField("status", res.Status()).WithField("user_id", id).Warn(op + " response error")
	}
}

func (x *AccountIndexer) warn(err error, id, msg string) {
	if x.Logger != nil {
		x.Logger.WithError(err).WithField("user_id", id).Warn(msg)
	}
}
