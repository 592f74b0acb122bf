package docclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/extract"
	"ai-docgen-be/pkg/template"
)

func newTestWorkspace(t *testing.T, handler http.Handler) (*Workspace, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWorkspace(NewClient(srv.URL, "default")), srv
}

func TestLoadFallsBackToDefault(t *testing.T) {
	ws, _ := newTestWorkspace(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
	}))

	if err := ws.Load(context.Background()); err != nil {
		t.Fatalf("Load should not fail when falling back: %v", err)
	}

	tpl := ws.Template()
	if len(tpl.Structure.Sections) != 5 {
		t.Errorf("fallback template has %d sections, want 5", len(tpl.Structure.Sections))
	}
	if ws.LastError() == "" {
		t.Error("failed fetch should record an error")
	}
	if ws.Loading() {
		t.Error("loading flag stuck after Load")
	}
}

func TestLoadUsesServerTemplate(t *testing.T) {
	remote := template.Default()
	remote.Metadata.Name = "Remote Template"

	ws, _ := newTestWorkspace(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"template": remote})
	}))

	if err := ws.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := ws.Template().Metadata.Name; got != "Remote Template" {
		t.Errorf("name = %q, want Remote Template", got)
	}
	if ws.LastError() != "" {
		t.Errorf("unexpected error: %q", ws.LastError())
	}
}

func TestSaveFailurePreservesWorkingCopy(t *testing.T) {
	ws, _ := newTestWorkspace(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "template rejected"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"template": template.Default()})
	}))

	if err := ws.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := ws.AddSection(template.SectionDraft{Title: "Risks"}); err != nil {
		t.Fatalf("AddSection: %v", err)
	}
	before := ws.Template()
	committedBefore := ws.Committed()

	if err := ws.Save(context.Background()); err == nil {
		t.Fatal("expected save to fail")
	}

	after := ws.Template()
	if len(after.Structure.Sections) != len(before.Structure.Sections) {
		t.Error("working copy changed by a failed save")
	}
	if len(ws.Committed().Structure.Sections) != len(committedBefore.Structure.Sections) {
		t.Error("committed copy changed by a failed save")
	}
	if ws.LastError() != "template rejected" {
		t.Errorf("error = %q, want server message", ws.LastError())
	}

	notes := ws.Notifications()
	if len(notes) == 0 || notes[len(notes)-1].Kind != NoticeError {
		t.Error("failed save should queue an error notification")
	}
	if ws.Loading() {
		t.Error("loading flag stuck after failed save")
	}
}

func TestSaveSuccessCommits(t *testing.T) {
	ws, _ := newTestWorkspace(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			var env struct {
				Template *template.Template `json:"template"`
			}
			json.NewDecoder(r.Body).Decode(&env)
			json.NewEncoder(w).Encode(map[string]interface{}{"template": env.Template})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"template": template.Default()})
	}))

	if err := ws.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := ws.AddSection(template.SectionDraft{Title: "Risks"}); err != nil {
		t.Fatalf("AddSection: %v", err)
	}

	if err := ws.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if got := len(ws.Committed().Structure.Sections); got != 6 {
		t.Errorf("committed sections = %d, want 6", got)
	}
	if ws.LastError() != "" {
		t.Errorf("unexpected error: %q", ws.LastError())
	}

	notes := ws.Notifications()
	if len(notes) == 0 || notes[len(notes)-1].Kind != NoticeSuccess {
		t.Error("successful save should queue a success notification")
	}
}

func TestUploadCachesExtractedContent(t *testing.T) {
	// The server answers each upload with the session's full extraction map,
	// so the second response subsumes the first.
	notes := extract.Content{
		Filename: "notes.txt",
		Type:     "text",
		Segments: []extract.Segment{{Label: "notes.txt", Text: "meeting notes"}},
	}
	deck := extract.Content{Filename: "deck.pptx", Type: "pptx"}

	responses := []map[string]interface{}{
		{
			"message": "1 file(s) uploaded and processed",
			"files": []map[string]string{
				{"filename": "notes.txt", "type": "text", "content_preview": "meeting notes"},
			},
			"extracted_content": map[string]extract.Content{"notes.txt": notes},
		},
		{
			"message": "1 file(s) uploaded and processed",
			"files": []map[string]string{
				{"filename": "deck.pptx", "type": "pptx", "content_preview": ""},
			},
			"extracted_content": map[string]extract.Content{"notes.txt": notes, "deck.pptx": deck},
		},
	}
	call := 0
	ws, _ := newTestWorkspace(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "store unavailable"})
			return
		}
		json.NewEncoder(w).Encode(responses[call])
		call++
	}))

	if err := ws.Upload(context.Background(), map[string][]byte{"notes.txt": []byte("meeting notes")}); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	files := ws.Files()
	if len(files) != 1 || files[0].Preview != "meeting notes" {
		t.Fatalf("files = %+v", files)
	}
	extracted := ws.ExtractedContent()
	if len(extracted) != 1 || len(extracted["notes.txt"].Segments) != 1 {
		t.Fatalf("extracted = %+v", extracted)
	}

	if err := ws.Upload(context.Background(), map[string][]byte{"deck.pptx": {0x50, 0x4b}}); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	extracted = ws.ExtractedContent()
	if len(extracted) != 2 {
		t.Errorf("cache should hold the server's full map, got %+v", extracted)
	}
	if len(ws.Files()) != 2 {
		t.Errorf("file list should accumulate, got %+v", ws.Files())
	}

	if err := ws.Clear(context.Background()); err == nil {
		t.Fatal("expected clear to fail")
	}
	if len(ws.ExtractedContent()) != 2 {
		t.Error("failed clear must not drop the extraction cache")
	}
}

func TestGenerateStoresContentAndStats(t *testing.T) {
	generated := content.Generated{
		Metadata: content.Meta{SourcesUsed: []string{"a.pdf"}},
		Sections: map[string]content.SectionContent{
			"s1": {Title: "One", Content: content.TextBody("x"), WordCount: 100,
				Citations: []content.Citation{{FullCitation: "a.pdf: p1"}, {FullCitation: "a.pdf: p2"}}},
			"s2": {Title: "Two", Content: content.TextBody("y"), WordCount: 250},
		},
	}

	ws, _ := newTestWorkspace(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"content": generated})
	}))

	if err := ws.Generate(context.Background(), "be concise"); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	stats := ws.Stats()
	if stats.TotalWords != 350 || stats.AvgWordsPerSection != 175 || stats.TotalCitations != 2 {
		t.Errorf("stats = %+v", stats)
	}

	quality := ws.Quality()
	if quality.Grade == "" {
		t.Error("quality report should be derivable after generation")
	}
}

func TestGenerateFailureSurfacesServerMessage(t *testing.T) {
	ws, _ := newTestWorkspace(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Session not found"})
	}))

	err := ws.Generate(context.Background(), "")
	if err == nil {
		t.Fatal("expected generate to fail")
	}
	if err.Error() != "Session not found" {
		t.Errorf("error = %q, want the server's message", err.Error())
	}
	if ws.Generated() != nil {
		t.Error("failed generate must not store content")
	}
}

func TestClearResetsEverythingButIdentity(t *testing.T) {
	ws, _ := newTestWorkspace(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete:
			json.NewEncoder(w).Encode(map[string]string{"message": "Session cleared"})
		case r.URL.Path == "/api/generate":
			json.NewEncoder(w).Encode(map[string]interface{}{"content": content.Generated{
				Sections: map[string]content.SectionContent{"s": {WordCount: 1}},
			}})
		default:
			json.NewEncoder(w).Encode(map[string]interface{}{"template": template.Default()})
		}
	}))

	if err := ws.Generate(context.Background(), ""); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := ws.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if ws.Generated() != nil {
		t.Error("generated content should be dropped")
	}
	if len(ws.Files()) != 0 {
		t.Error("file list should be dropped")
	}
	if len(ws.ExtractedContent()) != 0 {
		t.Error("extraction cache should be dropped")
	}
	if got := len(ws.Template().Structure.Sections); got != 5 {
		t.Errorf("template after clear has %d sections, want default 5", got)
	}
}

func TestNotificationQueue(t *testing.T) {
	ws := NewWorkspace(NewClient("http://unused", "default"))

	first := ws.Notify(NoticeInfo, "first")
	second := ws.Notify(NoticeSuccess, "second")

	notes := ws.Notifications()
	if len(notes) != 2 || notes[0].ID != first.ID || notes[1].ID != second.ID {
		t.Fatalf("queue = %+v", notes)
	}
	if notes[0].CreatedAt.IsZero() {
		t.Error("notifications must be timestamped")
	}

	ws.Dismiss(first.ID)
	notes = ws.Notifications()
	if len(notes) != 1 || notes[0].ID != second.ID {
		t.Errorf("after dismiss: %+v", notes)
	}

	// Dismissing an unknown id is a no-op
	ws.Dismiss("missing")
	if len(ws.Notifications()) != 1 {
		t.Error("dismissing unknown id changed the queue")
	}
}

func TestEditsBeforeLoadTargetDefault(t *testing.T) {
	ws := NewWorkspace(NewClient("http://unused", "default"))

	if _, err := ws.AddSection(template.SectionDraft{Title: "Early"}); err != nil {
		t.Fatalf("AddSection: %v", err)
	}
	if got := len(ws.Template().Structure.Sections); got != 6 {
		t.Errorf("sections = %d, want default five plus one", got)
	}
}
