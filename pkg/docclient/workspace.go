package docclient

import (
	"context"
	"sync"

	"ai-docgen-be/pkg/content"
	"ai-docgen-be/pkg/extract"
	"ai-docgen-be/pkg/template"
)

// Workspace owns the client-side state for one working document: the
// template being edited, the last state accepted by the server, uploaded
// file records with their extracted content, generated content and the
// notification queue. All mutations
// go through its methods under one lock, preserving the single-writer rule.
//
// The working template and the committed template are distinct copies:
// edits accumulate locally and only an explicit Save pushes them to the
// server. A failed save leaves the working copy untouched for retry.
type Workspace struct {
	mu sync.Mutex

	client *Client

	working   *template.Template
	committed *template.Template

	files     []UploadResult
	extracted map[string]extract.Content
	generated *content.Generated

	loading       bool
	lastError     string
	notifications []Notification
}

func NewWorkspace(client *Client) *Workspace {
	return &Workspace{
		client: client,
	}
}

// Load fetches the remote session's template. When the server has none, or
// the call fails, the hard-coded default template is used so the editor is
// never empty.
func (w *Workspace) Load(ctx context.Context) error {
	w.setLoading(true)
	defer w.setLoading(false)

	tpl, err := w.client.LoadTemplate(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil || tpl == nil {
		w.working = template.Default()
		w.committed = w.working.Clone()
		if err != nil {
			w.lastError = err.Error()
			w.notifications = append(w.notifications, newNotification(NoticeInfo, "Using default template"))
		}
		return nil
	}

	w.working = tpl
	w.committed = tpl.Clone()
	w.lastError = ""
	return nil
}

// Save pushes the full working template to the server. On success the
// committed copy is replaced; on failure the working copy is untouched and
// the server's message lands in the error slot and notification queue.
func (w *Workspace) Save(ctx context.Context) error {
	w.setLoading(true)
	defer w.setLoading(false)

	w.mu.Lock()
	if w.working == nil {
		w.working = template.Default()
	}
	snapshot := w.working.Clone()
	w.mu.Unlock()

	saved, err := w.client.SaveTemplate(ctx, snapshot)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.lastError = err.Error()
		w.notifications = append(w.notifications, newNotification(NoticeError, err.Error()))
		return err
	}

	w.committed = saved.Clone()
	w.lastError = ""
	w.notifications = append(w.notifications, newNotification(NoticeSuccess, "Template saved"))
	return nil
}

// AddSection appends a section to the working template. Rejection (blank
// title) is silent apart from the returned error: the sequence is unchanged.
func (w *Workspace) AddSection(draft template.SectionDraft) (*template.Section, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ensureWorking()
	return w.working.AddSection(draft)
}

func (w *Workspace) UpdateSection(id string, patch template.SectionPatch) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ensureWorking()
	return w.working.UpdateSection(id, patch)
}

func (w *Workspace) RemoveSection(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ensureWorking()
	return w.working.RemoveSection(id)
}

func (w *Workspace) MoveSection(id string, dir template.Direction) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ensureWorking()
	return w.working.MoveSection(id, dir)
}

func (w *Workspace) UpdateStyle(patch template.StylePatch) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ensureWorking()
	w.working.UpdateStyle(patch)
}

func (w *Workspace) UpdateMetadata(patch template.MetadataPatch) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ensureWorking()
	w.working.UpdateMetadata(patch)
}

// Template returns a copy of the working template.
func (w *Workspace) Template() *template.Template {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ensureWorking()
	return w.working.Clone()
}

// Committed returns a copy of the last server-accepted template.
func (w *Workspace) Committed() *template.Template {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.committed == nil {
		return nil
	}
	return w.committed.Clone()
}

// Upload sends source files, records the returned file list and replaces the
// extracted-content cache with the server's map, which already covers every
// upload of the session.
func (w *Workspace) Upload(ctx context.Context, files map[string][]byte) error {
	w.setLoading(true)
	defer w.setLoading(false)

	results, extracted, err := w.client.Upload(ctx, files)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.lastError = err.Error()
		w.notifications = append(w.notifications, newNotification(NoticeError, err.Error()))
		return err
	}

	w.files = append(w.files, results...)
	w.extracted = extracted
	w.lastError = ""
	w.notifications = append(w.notifications, newNotification(NoticeSuccess, "Files uploaded"))
	return nil
}

// Generate runs the template against the uploaded sources and stores the
// produced content. Statistics and quality become available afterwards.
func (w *Workspace) Generate(ctx context.Context, instructions string) error {
	w.setLoading(true)
	defer w.setLoading(false)

	generated, err := w.client.Generate(ctx, instructions)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.lastError = err.Error()
		w.notifications = append(w.notifications, newNotification(NoticeError, err.Error()))
		return err
	}

	w.generated = generated
	w.lastError = ""
	w.notifications = append(w.notifications, newNotification(NoticeSuccess, "Content generated"))
	return nil
}

func (w *Workspace) Refine(ctx context.Context, request string) error {
	w.setLoading(true)
	defer w.setLoading(false)

	refined, err := w.client.Refine(ctx, request)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.lastError = err.Error()
		w.notifications = append(w.notifications, newNotification(NoticeError, err.Error()))
		return err
	}

	w.generated = refined
	w.lastError = ""
	return nil
}

// Export downloads the rendered document. The workspace state is not
// touched beyond the loading flag.
func (w *Workspace) Export(ctx context.Context, format string) ([]byte, string, error) {
	w.setLoading(true)
	defer w.setLoading(false)

	data, filename, err := w.client.Export(ctx, format)
	if err != nil {
		w.mu.Lock()
		w.lastError = err.Error()
		w.notifications = append(w.notifications, newNotification(NoticeError, err.Error()))
		w.mu.Unlock()
		return nil, "", err
	}
	return data, filename, nil
}

// Clear resets everything except the session identity, remotely and locally.
func (w *Workspace) Clear(ctx context.Context) error {
	w.setLoading(true)
	defer w.setLoading(false)

	err := w.client.ClearSession(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.lastError = err.Error()
		w.notifications = append(w.notifications, newNotification(NoticeError, err.Error()))
		return err
	}

	w.working = template.Default()
	w.committed = w.working.Clone()
	w.files = nil
	w.extracted = nil
	w.generated = nil
	w.lastError = ""
	w.notifications = append(w.notifications, newNotification(NoticeInfo, "Session cleared"))
	return nil
}

// Generated returns the latest generated content, or nil.
func (w *Workspace) Generated() *content.Generated {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generated
}

// Stats derives content statistics from the current generated snapshot.
func (w *Workspace) Stats() content.Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return content.ComputeStats(w.generated)
}

// Quality derives the 0-100 quality report from the current snapshot.
func (w *Workspace) Quality() content.QualityReport {
	w.mu.Lock()
	defer w.mu.Unlock()
	return content.Score(w.generated)
}

// ExtractedContent returns the cached per-file extraction results.
func (w *Workspace) ExtractedContent() map[string]extract.Content {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]extract.Content, len(w.extracted))
	for k, v := range w.extracted {
		out[k] = v
	}
	return out
}

// Files returns the uploaded file records.
func (w *Workspace) Files() []UploadResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]UploadResult, len(w.files))
	copy(out, w.files)
	return out
}

// Notify appends a message to the notification queue.
func (w *Workspace) Notify(kind, message string) Notification {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := newNotification(kind, message)
	w.notifications = append(w.notifications, n)
	return n
}

// Notifications returns the queue in append order.
func (w *Workspace) Notifications() []Notification {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Notification, len(w.notifications))
	copy(out, w.notifications)
	return out
}

// Dismiss removes one notification by id.
func (w *Workspace) Dismiss(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, n := range w.notifications {
		if n.ID == id {
			w.notifications = append(w.notifications[:i], w.notifications[i+1:]...)
			return
		}
	}
}

// Loading reports whether a remote call is in flight.
func (w *Workspace) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading
}

// LastError returns the most recent remote failure message, empty after a
// successful call.
func (w *Workspace) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastError
}

func (w *Workspace) setLoading(v bool) {
	w.mu.Lock()
	w.loading = v
	w.mu.Unlock()
}

// ensureWorking lazily seeds the default template so section edits before
// the first Load still have a target. Callers must hold the lock.
func (w *Workspace) ensureWorking() {
	if w.working == nil {
		w.working = template.Default()
		w.committed = w.working.Clone()
	}
}
