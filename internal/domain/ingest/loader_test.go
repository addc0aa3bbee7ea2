package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/statusboard/internal/domain/ingest"
	"github.com/okian/statusboard/internal/domain/model"
	"github.com/okian/statusboard/internal/testfixtures"
	"github.com/okian/statusboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func file(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

func TestLoader_LoadFS(t *testing.T) {
	Convey("Given a loader", t, func() {
		ctx := context.Background()
		loader := ingest.NewLoader()

		Convey("When the directory holds one valid file", func() {
			fsys := fstest.MapFS{
				"gpt-4o_0.7.json": file(`{"items":[{"name":"Private jet","type":"object","rating":97}]}`),
			}
			res := loader.LoadFS(ctx, fsys)

			Convey("Then it should yield exactly that record", func() {
				So(res.DirState, ShouldEqual, ingest.DirOK)
				So(res.Responses, ShouldHaveLength, 1)
				r := res.Responses[0]
				So(r.Model, ShouldEqual, "gpt-4o")
				So(r.Temperature, ShouldEqual, model.Temperature(0.7))
				So(r.Items, ShouldResemble, []model.StatusItem{{Name: "Private jet", Kind: model.KindObject, Rating: 97}})
				So(r.Source, ShouldEqual, "gpt-4o_0.7.json")
			})
		})

		Convey("When an invalid file sits next to a valid one", func() {
			fsys := fstest.MapFS{
				"bad_0.2.json":    file(`{"items": [`),
				"gpt-4o_0.7.json": file(`{"items":[]}`),
			}
			res := loader.LoadFS(ctx, fsys)

			Convey("Then only the valid file should produce a record", func() {
				So(res.Responses, ShouldHaveLength, 1)
				So(res.Responses[0].Model, ShouldEqual, "gpt-4o")
				So(res.FilesSeen, ShouldEqual, 2)
				So(res.FilesSkipped, ShouldEqual, 1)
				So(res.Diagnostics, ShouldHaveLength, 1)
				So(res.Diagnostics[0].File, ShouldEqual, "bad_0.2.json")
				So(res.Diagnostics[0].Action, ShouldEqual, ingest.ActionSkipped)
			})
		})

		Convey("When the directory mixes extensions and sub-directories", func() {
			fsys := fstest.MapFS{
				"a_0.2.json":        file(`{"items":[]}`),
				"notes.txt":         file(`hello`),
				"b_0.7.JSON":        file(`{"items":[]}`),
				"nested.json/x.txt": file(`x`),
			}
			res := loader.LoadFS(ctx, fsys)

			Convey("Then only exact .json files should be considered", func() {
				So(res.FilesSeen, ShouldEqual, 1)
				So(res.Responses, ShouldHaveLength, 1)
				So(res.Responses[0].Model, ShouldEqual, "a")
			})
		})

		Convey("When a file has no items field", func() {
			res := loader.LoadFS(ctx, fstest.MapFS{"grok-4_1.0.json": file(`{"note":"empty"}`)})

			Convey("Then the record should be retained with no items", func() {
				So(res.Responses, ShouldHaveLength, 1)
				So(res.Responses[0].Items, ShouldBeEmpty)
				So(res.Diagnostics[0].Action, ShouldEqual, ingest.ActionDefaulted)
			})
		})

		Convey("When a file name has no separator", func() {
			res := loader.LoadFS(ctx, fstest.MapFS{"mystery.json": file(`{"items":[]}`)})

			Convey("Then a record with an invalid temperature should be produced", func() {
				So(res.Responses, ShouldHaveLength, 1)
				So(res.Responses[0].Model, ShouldEqual, "mystery")
				So(res.Responses[0].Temperature.Valid(), ShouldBeFalse)
			})
		})

		Convey("When two files are duplicates of the same pair", func() {
			res := loader.LoadFS(ctx, fstest.MapFS{
				"gpt-4o_0.7.json":  file(`{"items":[{"name":"A","type":"object","rating":1}]}`),
				"gpt-4o_0.70.json": file(`{"items":[{"name":"B","type":"object","rating":2}]}`),
			})

			Convey("Then both records should be kept without merging", func() {
				So(res.Responses, ShouldHaveLength, 2)
				So(res.Responses[0].Key(), ShouldResemble, res.Responses[1].Key())
			})
		})

		Convey("When loading many files with different concurrency limits", func() {
			fsys := fstest.MapFS{}
			for _, name := range []string{"a_0.2", "b_0.7", "c_1.0", "d_1.2", "e_0.2", "f_0.7", "g", "h_x"} {
				fsys[name+".json"] = file(`{"items":[{"name":"` + name + `","type":"activity","rating":50}]}`)
			}
			serial := ingest.NewLoader(ingest.WithConcurrency(1)).LoadFS(ctx, fsys)
			parallel := ingest.NewLoader(ingest.WithConcurrency(8)).LoadFS(ctx, fsys)

			Convey("Then both should produce the same records in listing order", func() {
				So(serial.Responses, ShouldHaveLength, 8)
				So(serial.Responses[0].Model, ShouldEqual, "a")
				So(serial.Responses[7].Model, ShouldEqual, "h")
				diff := cmp.Diff(serial.Responses, parallel.Responses)
				So(diff, ShouldBeEmpty)
			})
		})

		Convey("When loading a generated grid with different concurrency limits", func() {
			fsys := testfixtures.MapFS(testfixtures.NewGenerator(testfixtures.WithSeed(11), testfixtures.WithMaxItems(20)).Grid())
			serial := ingest.NewLoader(ingest.WithConcurrency(1)).LoadFS(ctx, fsys)
			parallel := ingest.NewLoader(ingest.WithConcurrency(8)).LoadFS(ctx, fsys)

			So(serial.Responses, ShouldHaveLength, 16)
			So(cmp.Diff(serial.Responses, parallel.Responses), ShouldBeEmpty)
			So(cmp.Diff(serial.Diagnostics, parallel.Diagnostics), ShouldBeEmpty)
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			res := loader.LoadFS(cctx, fstest.MapFS{"a_0.2.json": file(`{"items":[]}`)})

			Convey("Then files are skipped without failing the load", func() {
				So(res.Responses, ShouldBeEmpty)
				So(res.FilesSkipped, ShouldEqual, 1)
			})
		})

		Convey("When configured to clamp ratings", func() {
			clamp := ingest.NewLoader(ingest.WithRatingPolicy(ingest.PolicyClamp))
			res := clamp.LoadFS(ctx, fstest.MapFS{"a_0.2.json": file(`{"items":[{"name":"X","type":"object","rating":140}]}`)})
			So(clamp.Policy(), ShouldEqual, ingest.PolicyClamp)
			So(res.Responses[0].Items[0].Rating, ShouldEqual, 100)
			So(res.ItemCount(), ShouldEqual, 1)
		})
	})
}

func TestLoader_Load(t *testing.T) {
	Convey("Given a loader reading from disk", t, func() {
		ctx := context.Background()
		loader := ingest.NewLoader()

		Convey("When the directory does not exist", func() {
			res := loader.Load(ctx, filepath.Join(t.TempDir(), "missing"))

			Convey("Then it should return an empty collection flagged missing", func() {
				So(res.DirState, ShouldEqual, ingest.DirMissing)
				So(res.Responses, ShouldNotBeNil)
				So(res.Responses, ShouldBeEmpty)
			})
		})

		Convey("When the path is a regular file", func() {
			path := filepath.Join(t.TempDir(), "data")
			So(os.WriteFile(path, []byte("x"), 0o600), ShouldBeNil)
			res := loader.Load(ctx, path)
			So(res.DirState, ShouldEqual, ingest.DirUnreadable)
			So(res.Responses, ShouldBeEmpty)
		})

		Convey("When the directory holds files", func() {
			dir := t.TempDir()
			So(os.WriteFile(filepath.Join(dir, "gpt-4o_0.2.json"), []byte(`{"items":[{"name":"Yacht","type":"object","rating":96}]}`), 0o600), ShouldBeNil)
			So(os.WriteFile(filepath.Join(dir, "readme.md"), []byte("#"), 0o600), ShouldBeNil)
			res := loader.Load(ctx, dir)

			Convey("Then it should load every .json file", func() {
				So(res.DirState, ShouldEqual, ingest.DirOK)
				So(res.Responses, ShouldHaveLength, 1)
				So(res.ItemCount(), ShouldEqual, 1)
			})
		})
	})
}
