package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/statusboard/internal/adapters/http/api"
	service "github.com/okian/statusboard/internal/app"
	"github.com/okian/statusboard/internal/testfixtures"
	"github.com/okian/statusboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func writeData(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

// newTestServer starts a service over dir and returns a mux serving the API.
func newTestServer(t *testing.T, dir string) *http.ServeMux {
	t.Helper()
	svc, err := service.New(
		service.WithDataDir(dir),
		service.WithWatch(false, 0),
		service.WithSystemMetricsInterval(0),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return mux
}

func seededDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := testfixtures.WriteDir(dir, testfixtures.Canonical()); err != nil {
		t.Fatal(err)
	}
	return dir
}

func do(mux http.Handler, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
	}
	return rec, body
}

func names(body map[string]any) []string {
	var out []string
	for _, it := range body["items"].([]any) {
		out = append(out, it.(map[string]any)["name"].(string))
	}
	return out
}

func TestServer_Routes(t *testing.T) {
	Convey("Given an API server over a seeded directory", t, func() {
		mux := newTestServer(t, seededDir(t))

		Convey("When checking health", func() {
			rec, body := do(mux, http.MethodGet, "/healthz")

			Convey("Then it should report ok with the data state", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(body["status"], ShouldEqual, "ok")
				So(body["state"], ShouldEqual, "ready")
				So(body["snapshot_id"], ShouldNotBeEmpty)
			})
		})

		Convey("When fetching the full collection", func() {
			rec, body := do(mux, http.MethodGet, "/api/data")

			Convey("Then every response should be returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(body["responses"], ShouldHaveLength, 3)
			})
		})

		Convey("When filtering responses by model", func() {
			rec, body := do(mux, http.MethodGet, "/api/responses?models=gpt-4o")

			Convey("Then only that model should be returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				responses := body["responses"].([]any)
				So(responses, ShouldHaveLength, 1)
				So(responses[0].(map[string]any)["model"], ShouldEqual, "gpt-4o")
			})
		})

		Convey("When an empty model list is requested", func() {
			_, body := do(mux, http.MethodGet, "/api/responses?models=")

			Convey("Then nothing should match", func() {
				So(body["responses"], ShouldBeEmpty)
			})
		})

		Convey("When listing items with defaults", func() {
			rec, body := do(mux, http.MethodGet, "/api/items")

			Convey("Then items should be sorted by rating descending", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(body["sort"], ShouldEqual, "rating")
				So(body["order"], ShouldEqual, "desc")
				So(body["total"], ShouldEqual, 5.0)
				So(names(body), ShouldResemble, []string{"Superyacht", "Private jet", "Island", "Michelin dinner", "Polo"})
			})
		})

		Convey("When listing items by name with a limit", func() {
			_, body := do(mux, http.MethodGet, "/api/items?sort=name&order=asc&limit=2")

			Convey("Then total should count every match", func() {
				So(body["total"], ShouldEqual, 5.0)
				So(names(body), ShouldResemble, []string{"Island", "Michelin dinner"})
			})
		})

		Convey("When sorting by temperature", func() {
			_, body := do(mux, http.MethodGet, "/api/items?sort=temperature&order=asc")

			Convey("Then the unknown temperature should come last as null", func() {
				items := body["items"].([]any)
				last := items[len(items)-1].(map[string]any)
				So(last["model"], ShouldEqual, "mystery")
				So(last, ShouldContainKey, "temperature")
				So(last["temperature"], ShouldBeNil)
			})
		})

		Convey("When query parameters are invalid", func() {
			for _, target := range []string{
				"/api/items?sort=popularity",
				"/api/items?order=sideways",
				"/api/items?limit=0",
				"/api/responses?temperatures=warm",
				"/api/stats?min_rating=90&max_rating=10",
				"/api/stats?kind=vehicle",
			} {
				rec, body := do(mux, http.MethodGet, target)
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(body["code"], ShouldEqual, "bad_request")
				So(body["message"], ShouldNotBeEmpty)
			}
		})

		Convey("When summarizing activities", func() {
			rec, body := do(mux, http.MethodGet, "/api/stats?kind=activity")

			Convey("Then the summary should cover only activities", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(body["no_data"], ShouldEqual, false)
				So(body["count"], ShouldEqual, 2.0)
				rating := body["rating"].(map[string]any)
				So(rating["mean"], ShouldEqual, 78.5)
			})
		})

		Convey("When summarizing a selection that matches nothing", func() {
			_, body := do(mux, http.MethodGet, "/api/stats?models=nobody")

			Convey("Then it should report no data instead of zeros", func() {
				So(body["no_data"], ShouldEqual, true)
				So(body["rating"], ShouldBeNil)
			})
		})

		Convey("When fetching the overview", func() {
			_, body := do(mux, http.MethodGet, "/api/overview")

			Convey("Then it should carry the top item and display names", func() {
				So(body["responses"], ShouldEqual, 3.0)
				So(body["items"], ShouldEqual, 5.0)
				So(body["top"].(map[string]any)["name"], ShouldEqual, "Superyacht")
				So(body["display_names"].(map[string]any)["gpt-4o"], ShouldEqual, "GPT-4o")
			})
		})

		Convey("When fetching facets", func() {
			_, body := do(mux, http.MethodGet, "/api/facets")

			Convey("Then only valid temperatures should be listed", func() {
				So(body["models"], ShouldResemble, []any{"claude-opus-4", "gpt-4o", "mystery"})
				So(body["temperatures"], ShouldResemble, []any{0.2, 0.7})
				So(body["invalid_temperatures"], ShouldEqual, true)
			})
		})

		Convey("When fetching diagnostics", func() {
			_, body := do(mux, http.MethodGet, "/api/diagnostics")

			Convey("Then the defaulted temperature should be reported", func() {
				So(body["files_seen"], ShouldEqual, 3.0)
				diags := body["diagnostics"].([]any)
				So(diags, ShouldNotBeEmpty)
				d := diags[0].(map[string]any)
				So(d["file"], ShouldEqual, "mystery.json")
				So(d["action"], ShouldEqual, "defaulted")
			})
		})

		Convey("When fetching service stats", func() {
			rec, body := do(mux, http.MethodGet, "/stats")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(body["state"], ShouldEqual, "ready")
			So(body["responses"], ShouldEqual, 3.0)
		})

		Convey("When scraping metrics", func() {
			do(mux, http.MethodGet, "/healthz")
			rec, _ := do(mux, http.MethodGet, "/metrics")
			b, _ := io.ReadAll(rec.Body)

			Convey("Then the custom registry should be exposed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(string(b), ShouldContainSubstring, "statusboard_http_requests_total")
			})
		})

		Convey("When using the wrong method", func() {
			rec, _ := do(mux, http.MethodPost, "/api/items")
			So(rec.Code, ShouldEqual, http.StatusNotFound)

			rec, _ = do(mux, http.MethodGet, "/api/reload")
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestServer_Reload(t *testing.T) {
	Convey("Given an API server over a seeded directory", t, func() {
		dir := seededDir(t)
		mux := newTestServer(t, dir)
		_, before := do(mux, http.MethodGet, "/healthz")

		Convey("When a file is added and a reload is requested", func() {
			writeData(t, dir, "gpt-4o_1.0.json", `{"items":[{"name":"Castle","type":"object","rating":91}]}`)
			rec, body := do(mux, http.MethodPost, "/api/reload")

			Convey("Then a new snapshot should be served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(body["state"], ShouldEqual, "ready")
				So(body["snapshot_id"], ShouldNotEqual, before["snapshot_id"])

				_, data := do(mux, http.MethodGet, "/api/data")
				So(data["responses"], ShouldHaveLength, 4)
			})
		})
	})
}

func TestServer_NoData(t *testing.T) {
	Convey("Given an API server over a missing directory", t, func() {
		mux := newTestServer(t, filepath.Join(t.TempDir(), "absent"))

		Convey("When checking health", func() {
			rec, body := do(mux, http.MethodGet, "/healthz")

			Convey("Then it should be live but report the missing directory", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(body["state"], ShouldEqual, "no_data")
				So(body["reason"], ShouldEqual, "directory_missing")
			})
		})

		Convey("When querying", func() {
			_, data := do(mux, http.MethodGet, "/api/data")
			_, items := do(mux, http.MethodGet, "/api/items")
			_, stats := do(mux, http.MethodGet, "/api/stats")

			Convey("Then collections should be empty rather than null", func() {
				So(data["responses"], ShouldResemble, []any{})
				So(items["items"], ShouldResemble, []any{})
				So(stats["no_data"], ShouldEqual, true)
			})
		})
	})
}
