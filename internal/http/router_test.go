package http

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"album-service/internal/memory"
	cl "album-service/pkg/catelog"

	"github.com/google/go-cmp/cmp"
	jsonutils "github.com/twitsprout/tools/json"
)

func newMemoryHandler() *Handler {
	store := memory.New()
	h := newTestHandler()
	h.AlbumStore = store
	h.PhotoStore = store
	return h
}

func TestAlbumLifecycle(t *testing.T) {
	h := newMemoryHandler()
	coach := token(t, cl.RoleCoach)

	wr := serve(t, h, "POST", "/album", `{"title": "A", "artist": "B", "year": 2001}`, token(t, cl.RoleMember))
	checkErrorRes(t, wr, http.StatusUnauthorized, "Unauthorized - you are not a coach")

	wr = serve(t, h, "POST", "/album", `{"title": "A", "artist": "B", "year": 2001}`, coach)
	if wr.Code != http.StatusCreated {
		t.Fatalf("unexpected response code returned: %s %s", cmp.Diff(http.StatusCreated, wr.Code), wr.Body.String())
	}
	var created cl.Album
	if err := jsonutils.Decode(wr.Body, &created); err != nil {
		t.Fatalf("unexpected error returned from decoding response body: %s", err.Error())
	}
	if created.ID == "" {
		t.Fatal("expected a store assigned id")
	}

	wr = serve(t, h, "GET", "/album/"+created.ID, "", coach)
	body := wr.Body.Bytes()
	var raw map[string]interface{}
	if err := jsonutils.Decode(bytes.NewReader(body), &raw); err != nil {
		t.Fatalf("unexpected error returned from decoding response body: %s", err.Error())
	}
	if _, ok := raw["_id"]; ok {
		t.Fatalf("unexpected store key in response: %s", body)
	}
	if raw["id"] != created.ID {
		t.Fatalf("unexpected id in response: %s", cmp.Diff(created.ID, raw["id"]))
	}
	var fetched cl.Album
	if err := jsonutils.Decode(bytes.NewReader(body), &fetched); err != nil {
		t.Fatalf("unexpected error returned from decoding response body: %s", err.Error())
	}
	exp := cl.Album{ID: created.ID, Title: "A", Artist: "B", Year: intPtr(2001)}
	if !cmp.Equal(fetched, exp) {
		t.Fatalf("unexpected album returned: %s", cmp.Diff(exp, fetched))
	}

	wr = serve(t, h, "GET", "/album/nonexistent", "", coach)
	checkErrorRes(t, wr, http.StatusNotFound, "Album not found")

	wr = serve(t, h, "DELETE", "/album/"+created.ID, "", coach)
	if wr.Code != http.StatusOK {
		t.Fatalf("unexpected response code returned: %s", cmp.Diff(http.StatusOK, wr.Code))
	}
	wr = serve(t, h, "DELETE", "/album/"+created.ID, "", coach)
	checkErrorRes(t, wr, http.StatusNotFound, "Album not found")
}

func TestPhotoScoping(t *testing.T) {
	h := newMemoryHandler()
	coach := token(t, cl.RoleCoach)

	createAlbum := func(title string) cl.Album {
		wr := serve(t, h, "POST", "/album", `{"title": "`+title+`", "artist": "B"}`, coach)
		var a cl.Album
		if err := jsonutils.Decode(wr.Body, &a); err != nil {
			t.Fatalf("unexpected error returned from decoding response body: %s", err.Error())
		}
		return a
	}
	a1 := createAlbum("first")
	a2 := createAlbum("second")

	wr := serve(t, h, "POST", "/album/"+a1.ID+"/photo", `{"title": "P"}`, coach)
	checkErrorRes(t, wr, http.StatusBadRequest, "Bad request - url is required")

	wr = serve(t, h, "POST", "/album/nonexistent/photo", `{"title": "P", "url": "http://p"}`, coach)
	checkErrorRes(t, wr, http.StatusNotFound, "Album not found")

	wr = serve(t, h, "POST", "/album/"+a1.ID+"/photo", `{"title": "P", "url": "http://p"}`, coach)
	if wr.Code != http.StatusCreated {
		t.Fatalf("unexpected response code returned: %s %s", cmp.Diff(http.StatusCreated, wr.Code), wr.Body.String())
	}
	var p cl.Photo
	if err := jsonutils.Decode(wr.Body, &p); err != nil {
		t.Fatalf("unexpected error returned from decoding response body: %s", err.Error())
	}
	if !p.Date.Equal(testNow) {
		t.Fatalf("unexpected default date: %s", cmp.Diff(testNow, p.Date))
	}

	wr = serve(t, h, "GET", "/album/"+a2.ID+"/photo/"+p.ID, "", coach)
	checkErrorRes(t, wr, http.StatusNotFound, "Photo not found in this album")

	wr = serve(t, h, "GET", "/album/"+a2.ID+"/photo", "", coach)
	var listed []cl.Photo
	if err := jsonutils.Decode(wr.Body, &listed); err != nil {
		t.Fatalf("unexpected error returned from decoding response body: %s", err.Error())
	}
	if len(listed) != 0 {
		t.Fatalf("unexpected photos in second album: %d", len(listed))
	}

	wr = serve(t, h, "DELETE", "/album/"+a1.ID, "", coach)
	if wr.Code != http.StatusOK {
		t.Fatalf("unexpected response code returned: %s", cmp.Diff(http.StatusOK, wr.Code))
	}
	n, err := h.PhotoStore.DeleteAlbumPhotos(context.Background(), a1.ID)
	if err != nil || n != 0 {
		t.Fatalf("expected photos to be cascaded, got %d left (%v)", n, err)
	}
}

func TestRouteNotFound(t *testing.T) {
	h := newMemoryHandler()
	wr := serve(t, h, "GET", "/nothing/here", "", token(t, cl.RoleCoach))
	if wr.Code != http.StatusNotFound {
		t.Fatalf("unexpected response code returned: %s", cmp.Diff(http.StatusNotFound, wr.Code))
	}
}
