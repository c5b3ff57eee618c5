package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "mealdb", "testdata", name))
	require.NoError(t, err)
	return data
}

func pngThumb(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 6, 4))))
	return buf.Bytes()
}

// serve starts a fake API. Bodies may reference the server root as {{base}}.
func serve(t *testing.T, routes map[string][]byte) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(bytes.ReplaceAll(body, []byte("{{base}}"), []byte(srv.URL)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// run executes the command line against srv and returns stdout, stderr and
// the exit code.
func run(t *testing.T, srv *httptest.Server, args ...string) (string, string, int) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfg := filepath.Join(t.TempDir(), "config.toml")
	body := fmt.Sprintf("api_base_url = %q\nrequests_per_second = 0\n", srv.URL+"/api/")
	require.NoError(t, os.WriteFile(cfg, []byte(body), 0o600))

	var stdout, stderr bytes.Buffer
	args = append([]string{"--config", cfg, "--no-color"}, args...)
	code := Execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestList_Table(t *testing.T) {
	srv := serve(t, map[string][]byte{"/api/filter.php": fixture(t, "filter_dessert.json")})

	out, errOut, code := run(t, srv, "list")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "52893")
	assert.Contains(t, out, "Apple & Blackberry Crumble")
	assert.Contains(t, out, "White chocolate creme brulee")
	assert.NotContains(t, out, "Bakewell tart", "records without a thumbnail are dropped")
	assert.Less(t, strings.Index(out, "Apple"), strings.Index(out, "White"))
}

func TestList_QueryJSON(t *testing.T) {
	srv := serve(t, map[string][]byte{"/api/filter.php": fixture(t, "filter_dessert.json")})

	out, errOut, code := run(t, srv, "list", "--query", "white", "--json")
	require.Equal(t, 0, code, errOut)

	var items []listItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "52917", items[0].ID)
	assert.Equal(t, "White chocolate creme brulee", items[0].Name)
}

func TestList_NoMatches(t *testing.T) {
	srv := serve(t, map[string][]byte{"/api/filter.php": fixture(t, "filter_dessert.json")})

	out, _, code := run(t, srv, "list", "-q", "tart")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, `No recipes match "tart"`)
}

func TestList_EmptyCategory(t *testing.T) {
	srv := serve(t, map[string][]byte{"/api/filter.php": []byte(`{"meals":null}`)})

	out, _, code := run(t, srv, "list", "--category", "Goat")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No recipes in Goat")
}

func TestList_AlertExitCode(t *testing.T) {
	srv := serve(t, nil)

	out, errOut, code := run(t, srv, "list")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "[ERROR] Error: 404")
	assert.Contains(t, errOut, "The requested resource was not found.")
}

func TestShow_Text(t *testing.T) {
	srv := serve(t, map[string][]byte{"/api/lookup.php": fixture(t, "lookup_52893.json")})

	out, errOut, code := run(t, srv, "show", "52893")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Apple & Blackberry Crumble")
	assert.Contains(t, out, "Dessert · British")
	assert.Contains(t, out, "Pudding")
	assert.Contains(t, out, "120g")
	assert.Contains(t, out, "Plain Flour")
	assert.Contains(t, out, "Heat oven to 190C")
	assert.Contains(t, out, "https://www.youtube.com/watch?v=4vhcOwVBDO4")
	assert.Contains(t, out, "ID      52893")
}

func TestShow_ImageJSON(t *testing.T) {
	lookup := []byte(`{"meals":[{"idMeal":"7","strMeal":"Tart","strMealThumb":"{{base}}/thumb.png",
		"strIngredient1":"Flour","strMeasure1":"100g","strIngredient2":"Salt","strMeasure2":" "}]}`)
	srv := serve(t, map[string][]byte{
		"/api/lookup.php": lookup,
		"/thumb.png":      pngThumb(t),
	})

	out, errOut, code := run(t, srv, "show", "7", "--image", "--json")
	require.Equal(t, 0, code, errOut)

	var item showItem
	require.NoError(t, json.Unmarshal([]byte(out), &item))
	assert.Equal(t, "Tart", item.Name)
	require.Len(t, item.Ingredients, 2)
	require.NotNil(t, item.Ingredients[0].Measure)
	assert.Equal(t, "100g", *item.Ingredients[0].Measure)
	assert.Nil(t, item.Ingredients[1].Measure, "blank measure is absent")
	require.NotNil(t, item.Image)
	assert.Equal(t, imageItem{Format: "png", Width: 6, Height: 4, Bytes: len(pngThumb(t))}, *item.Image)
}

func TestShow_MissingThumbnailWarns(t *testing.T) {
	lookup := []byte(`{"meals":[{"idMeal":"7","strMeal":"Tart","strMealThumb":"{{base}}/gone.png"}]}`)
	srv := serve(t, map[string][]byte{"/api/lookup.php": lookup})

	out, errOut, code := run(t, srv, "show", "7", "--image")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Tart")
	assert.Contains(t, errOut, "[WARN] thumbnail unavailable")
}

func TestShow_NotFound(t *testing.T) {
	srv := serve(t, map[string][]byte{"/api/lookup.php": []byte(`{"meals":null}`)})

	_, errOut, code := run(t, srv, "show", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "recipe not found")
}

func TestShow_RequiresID(t *testing.T) {
	srv := serve(t, nil)

	_, errOut, code := run(t, srv, "show")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "accepts 1 arg(s)")
}

func TestPrinterColors(t *testing.T) {
	var out, errOut bytes.Buffer
	p := &printer{out: &out, err: &errOut, useColors: true}
	p.Error("boom %d", 1)
	assert.Contains(t, errOut.String(), "✗ boom 1")
	assert.Contains(t, errOut.String(), "\x1b[31m")

	errOut.Reset()
	p.useColors = false
	p.Error("boom")
	assert.Equal(t, "[ERROR] boom\n", errOut.String())
	assert.Equal(t, "x", p.Bold("x"))
}
