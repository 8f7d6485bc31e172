package easel_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/easelkit/easel"
	"github.com/easelkit/easel/schema"
)

func TestListTemplates(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, http.MethodGet)
		assert.Equal(t, r.URL.Path, "/v1/custom-templates")
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")

		w.Write([]byte(`[
			{"template": {"id": "alpha", "name": "Alpha"}},
			{"template": {"id": "beta"}}
		]`))
	}))
	defer srv.Close()

	c := easel.NewClient(srv.URL, easel.WithToken("secret"))

	summaries, err := c.ListTemplates(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, len(summaries), 2)
	assert.Equal(t, summaries[0].Template.ID, "alpha")
	assert.Equal(t, summaries[0].Template.Name, "Alpha")
	assert.Equal(t, summaries[1].Template.ID, "beta")

	assert.Equal(t, gotAuth, "Bearer secret")
	assert.Equal(t, gotAccept, "application/json")
}

func TestClient_AnonymousWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := easel.NewClient(srv.URL)

	_, err := c.ListTemplates(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, gotAuth, "")
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := easel.NewClient(srv.URL)

	_, err := c.GetTemplate(context.Background(), "alpha")
	var se *easel.StatusError
	assert.Assert(t, errors.As(err, &se))
	assert.Equal(t, se.Code, http.StatusInternalServerError)
	assert.Equal(t, se.Path, "/v1/custom-templates/alpha")
}

func TestClient_RejectsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// template.id missing, violating the wire contract
		w.Write([]byte(`{"template": {"name": "Alpha"}, "layouts": []}`))
	}))
	defer srv.Close()

	c := easel.NewClient(srv.URL)

	_, err := c.GetTemplate(context.Background(), "alpha")
	assert.Assert(t, schema.IsValidationError(err))
}

func TestDeleteTemplate(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := easel.NewClient(srv.URL)

	assert.NilError(t, c.DeleteTemplate(context.Background(), "alpha"))
	assert.Equal(t, gotMethod, http.MethodDelete)
	assert.Equal(t, gotPath, "/v1/custom-templates/alpha")
}

func TestDeleteTemplate_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := easel.NewClient(srv.URL)

	err := c.DeleteTemplate(context.Background(), "gone")
	var se *easel.StatusError
	assert.Assert(t, errors.As(err, &se))
	assert.Equal(t, se.Code, http.StatusNotFound)
}
