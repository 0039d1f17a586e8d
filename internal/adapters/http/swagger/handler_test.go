package swagger_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/stacksafe/internal/adapters/http/swagger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegister(t *testing.T) {
	Convey("Given the docs routes", t, func() {
		mux := http.NewServeMux()
		swagger.Register(context.Background(), mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When fetching /api-docs", func() {
			resp, err := http.Get(srv.URL + "/api-docs")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the ReDoc page is served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldContainSubstring, "text/html")

				body, err := io.ReadAll(resp.Body)
				So(err, ShouldBeNil)
				So(string(body), ShouldContainSubstring, "Redoc.init('/openapi.yaml'")
			})
		})

		Convey("When fetching /openapi.yaml", func() {
			resp, err := http.Get(srv.URL + "/openapi.yaml")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the embedded spec is served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldContainSubstring, "application/yaml")

				body, err := io.ReadAll(resp.Body)
				So(err, ShouldBeNil)
				So(string(body), ShouldContainSubstring, "openapi: 3.0.3")
				So(string(body), ShouldContainSubstring, "/leaderboard")
			})
		})

		Convey("When registering on a nil mux", func() {
			So(func() { swagger.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
