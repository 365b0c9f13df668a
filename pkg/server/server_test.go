package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	srv, err := New(Config{Addr: ":0", MaxImageBytes: 1 << 20}, opts...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.hub.closeAll()
		ts.Close()
	})
	return ts
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, out
}

func decodeState(t *testing.T, body []byte) stateResponse {
	t.Helper()
	var state stateResponse
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode state: %v\n%s", err, body)
	}
	return state
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"ok"`) {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestIndexPage(t *testing.T) {
	ts := newTestServer(t, WithProfile(testsupport.SampleProfile()))
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d\n%s", resp.StatusCode, body)
	}
	page := string(body)
	for _, want := range []string{
		"<title>Portfolio Generator</title>",
		`data-template="modern" data-category="Creative" data-selected="true"`,
		`data-template="tech"`,
		`data-category="Professional"`,
		"Jane Doe",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("index missing %q", want)
		}
	}
}

func TestUpdateFieldRendersPreview(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/profile/fields", fieldRequest{Path: "personalInfo.name", Value: "Ada Lovelace"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d\n%s", resp.StatusCode, body)
	}
	if got := decodeState(t, body).Profile.PersonalInfo.Name; got != "Ada Lovelace" {
		t.Fatalf("name = %q", got)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/preview", nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Ada Lovelace") {
		t.Fatalf("preview missing name (status %d):\n%s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/preview.json", nil)
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected component response %d %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !json.Valid(body) {
		t.Fatalf("component preview is not JSON:\n%s", body)
	}
}

func TestUpdateFieldErrors(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name string
		req  fieldRequest
		want int
	}{
		{"bad path", fieldRequest{Path: "experience.title"}, http.StatusBadRequest},
		{"unknown section", fieldRequest{Path: "hobbies[0]"}, http.StatusBadRequest},
		{"unknown field", fieldRequest{Path: "personalInfo.age"}, http.StatusBadRequest},
		{"out of range", fieldRequest{Path: "skills[3]"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/profile/fields", tc.req)
			if resp.StatusCode != tc.want {
				t.Fatalf("status = %d, want %d\n%s", resp.StatusCode, tc.want, body)
			}
		})
	}
}

func TestAddAndRemoveEntries(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/profile/skills", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add status = %d\n%s", resp.StatusCode, body)
	}
	if got := len(decodeState(t, body).Profile.Skills); got != 2 {
		t.Fatalf("skills = %d, want 2", got)
	}

	resp, body = doJSON(t, http.MethodDelete, ts.URL+"/api/profile/skills/0", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove status = %d\n%s", resp.StatusCode, body)
	}

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/profile/skills/0", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("removing the last entry: status = %d, want 409", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/profile/personalInfo", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("adding to personal info: status = %d, want 400", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/profile/hobbies", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown section: status = %d, want 400", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/profile/skills/x", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad index: status = %d, want 400", resp.StatusCode)
	}
}

func TestPutProfile(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/api/profile", testsupport.SampleProfile())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d\n%s", resp.StatusCode, body)
	}
	if diff := cmp.Diff(testsupport.SampleProfile(), decodeState(t, body).Profile); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}

	invalid := testsupport.SampleProfile()
	invalid.ProfileImage = "https://example.com/me.png"
	resp, body = doJSON(t, http.MethodPut, ts.URL+"/api/profile", invalid)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422\n%s", resp.StatusCode, body)
	}
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if _, ok := errResp.Fields["profileImage"]; !ok {
		t.Fatalf("expected profileImage violation, got %+v", errResp.Fields)
	}

	resp, _ = doJSON(t, http.MethodPut, ts.URL+"/api/profile", "not a profile")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestTemplates(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/templates?category=Tech", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var templates []templateResponse
	if err := json.Unmarshal(body, &templates); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(templates) != 1 || templates[0].ID != "tech" {
		t.Fatalf("unexpected templates %+v", templates)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/templates", nil)
	if err := json.Unmarshal(body, &templates); err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list all: %d %v", resp.StatusCode, err)
	}
	if len(templates) != 8 {
		t.Fatalf("expected 8 templates, got %d", len(templates))
	}

	resp, body = doJSON(t, http.MethodPut, ts.URL+"/api/template", templateRequest{ID: "tech", Variant: "dark"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select status = %d\n%s", resp.StatusCode, body)
	}
	state := decodeState(t, body)
	if state.Template != "tech" || state.Variant != "dark" {
		t.Fatalf("selection = %q/%q", state.Template, state.Variant)
	}

	_, body = doJSON(t, http.MethodPut, ts.URL+"/api/template", templateRequest{ID: "retro"})
	if got := decodeState(t, body).Template; got != "modern" {
		t.Fatalf("unknown template should fall back to modern, got %q", got)
	}
}

func TestGenerateAndNavigate(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/generate", nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422\n%s", resp.StatusCode, body)
	}

	doJSON(t, http.MethodPost, ts.URL+"/api/profile/fields", fieldRequest{Path: "personalInfo.name", Value: "Ada"})
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/generate", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d\n%s", resp.StatusCode, body)
	}
	if got := decodeState(t, body).View; got != "preview" {
		t.Fatalf("view = %q, want preview", got)
	}

	resp, body = doJSON(t, http.MethodPut, ts.URL+"/api/view", viewRequest{View: "template"})
	if resp.StatusCode != http.StatusOK || decodeState(t, body).View != "template" {
		t.Fatalf("navigate failed: %d %s", resp.StatusCode, body)
	}
	resp, _ = doJSON(t, http.MethodPut, ts.URL+"/api/view", viewRequest{View: "settings"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDownload(t *testing.T) {
	ts := newTestServer(t, WithProfile(testsupport.SampleProfile()))

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/download", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d\n%s", resp.StatusCode, body)
	}
	if got := resp.Header.Get("Content-Disposition"); got != `attachment; filename="Jane_Doe_Portfolio.html"` {
		t.Fatalf("content disposition = %q", got)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Fatalf("content type = %q", resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(body), "<title>Jane Doe - Portfolio</title>") {
		t.Fatalf("unexpected document:\n%s", body)
	}

	empty := newTestServer(t)
	resp, _ = doJSON(t, http.MethodGet, empty.URL+"/download", nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
}

func TestDownloadReportsFailureBeforeWriting(t *testing.T) {
	srv, err := New(Config{Addr: ":0", MaxImageBytes: 1 << 20}, WithProfile(testsupport.SampleProfile()))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(srv.hub.closeAll)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/download", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestTimeout {
		t.Fatalf("status = %d, want 408\n%s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Content-Disposition") != "" {
		t.Fatalf("no attachment should be announced on failure")
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || !strings.Contains(body.Error, "context canceled") {
		t.Fatalf("unexpected error body %q (%v)", rec.Body.String(), err)
	}
}

func TestImageUpload(t *testing.T) {
	ts := newTestServer(t, WithProfile(testsupport.SampleProfile()))

	resp, body := upload(t, ts.URL+"/api/profile/image", "file", tinyPNG(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d\n%s", resp.StatusCode, body)
	}
	if img := decodeState(t, body).Profile.ProfileImage; !strings.HasPrefix(img, "data:image/png;base64,") {
		t.Fatalf("unexpected image %q", img)
	}

	resp, _ = upload(t, ts.URL+"/api/profile/image", "file", []byte("plain text, not an image"))
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", resp.StatusCode)
	}

	resp, _ = upload(t, ts.URL+"/api/profile/image", "other", tinyPNG(t))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	resp, _ = upload(t, ts.URL+"/api/profile/image", "file", make([]byte, 2<<20))
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", resp.StatusCode)
	}

	resp, body = doJSON(t, http.MethodDelete, ts.URL+"/api/profile/image", nil)
	if resp.StatusCode != http.StatusOK || decodeState(t, body).Profile.ProfileImage != "" {
		t.Fatalf("clear image failed: %d %s", resp.StatusCode, body)
	}

	_, body = doJSON(t, http.MethodGet, ts.URL+"/metrics", nil)
	for _, want := range []string{
		`portfolio_image_uploads_total{outcome="success"} 1`,
		`portfolio_image_uploads_total{outcome="failure"} 3`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics missing %q:\n%s", want, body)
		}
	}
}

func TestWebSocketPushesPreviews(t *testing.T) {
	ts := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	view := readMessage(t, conn)
	if view["type"] != "view" || view["view"] != "form" {
		t.Fatalf("unexpected first message %v", view)
	}
	initial := readMessage(t, conn)
	if initial["type"] != "preview" || initial["template"] != "modern" {
		t.Fatalf("unexpected snapshot %v", initial)
	}

	doJSON(t, http.MethodPost, ts.URL+"/api/profile/fields", fieldRequest{Path: "personalInfo.name", Value: "Grace Hopper"})
	update := readMessage(t, conn)
	if update["type"] != "preview" || !strings.Contains(update["html"].(string), "Grace Hopper") {
		t.Fatalf("unexpected update %v", update)
	}
	header := update["view"].(map[string]any)["header"].(map[string]any)
	if header["name"] != "Grace Hopper" {
		t.Fatalf("view header = %v", header)
	}

	doJSON(t, http.MethodPost, ts.URL+"/api/generate", nil)
	if msg := readMessage(t, conn); msg["type"] != "view" || msg["view"] != "preview" {
		t.Fatalf("expected view switch, got %v", msg)
	}
	msg := readMessage(t, conn)
	notice, _ := msg["notice"].(map[string]any)
	if msg["type"] != "notice" || notice["title"] != "Portfolio Generated!" {
		t.Fatalf("expected generated notice, got %v", msg)
	}
}

func TestMetricsCountsRenders(t *testing.T) {
	ts := newTestServer(t)
	doJSON(t, http.MethodGet, ts.URL+"/preview", nil)
	doJSON(t, http.MethodGet, ts.URL+"/preview.json", nil)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/metrics", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{
		`portfolio_renders_total{renderer="static"} 1`,
		`portfolio_renders_total{renderer="component"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics missing %q:\n%s", want, body)
		}
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg map[string]any
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read websocket: %v", err)
	}
	return msg
}

func upload(t *testing.T, url, field string, data []byte) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, "avatar.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestShutdownDisconnectsClients(t *testing.T) {
	srv, err := New(Config{})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	readMessage(t, conn)

	if got := srv.hub.count(); got != 1 {
		t.Fatalf("clients = %d, want 1", got)
	}
	if err := srv.Shutdown(testsupport.Context()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if got := srv.hub.count(); got != 0 {
		t.Fatalf("clients after shutdown = %d", got)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				t.Fatalf("expected normal closure, got %v", err)
			}
			return
		}
	}
}
