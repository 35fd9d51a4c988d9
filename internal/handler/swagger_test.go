package handler

import (
	"net/http"
	"testing"
)

func TestServeOpenAPI3Spec(t *testing.T) {
	api := newTestAPI(t, "secret")
	api.token = ""

	rec := api.do(t, http.MethodGet, "/openapi.json", nil)
	expectStatus(t, rec, http.StatusOK)

	spec := decode[OpenAPI3Spec](t, rec)
	if spec.OpenAPI != "3.0.3" {
		t.Errorf("Expected openapi 3.0.3, got %s", spec.OpenAPI)
	}
	for _, path := range []string{"/categories", "/months/{month}/open", "/months/{month}/summary", "/reset"} {
		if _, ok := spec.Paths[path]; !ok {
			t.Errorf("Expected path %s in spec", path)
		}
	}
	if _, ok := spec.Components["schemas"]; !ok {
		t.Error("Expected definitions to be converted to components/schemas")
	}
}
