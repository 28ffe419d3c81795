package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/perchapp/cli/pkg/api"
	"github.com/perchapp/cli/pkg/cache"
	clierrors "github.com/perchapp/cli/pkg/errors"
)

type fakeSession struct {
	userID   string
	imageURL string
	setErr   error
	setCalls int
}

func (s *fakeSession) UserID() string { return s.userID }

func (s *fakeSession) SetProfileImageURL(url string) error {
	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}
	s.imageURL = url
	return nil
}

type remoteResult struct {
	resp *api.UploadImageResponse
	err  error
}

type fakeRemote struct {
	results []remoteResult
	calls   int
	lastReq api.UploadImageRequest
}

func (r *fakeRemote) UploadImage(req api.UploadImageRequest) (*api.UploadImageResponse, error) {
	r.lastReq = req
	res := r.results[r.calls]
	r.calls++
	return res.resp, res.err
}

type fakeCache struct {
	invalidated []string
}

func (c *fakeCache) Invalidate(key string) {
	c.invalidated = append(c.invalidated, key)
}

func memImage(name, contentType string, data []byte) *ImageFile {
	return NewImageFile(name, contentType, int64(len(data)), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

func successResponse(url string) remoteResult {
	return remoteResult{resp: &api.UploadImageResponse{Data: api.UploadImageData{PublicURL: url}}}
}

// newTestUploader wires an uploader with fakes and a recording sleep
func newTestUploader(session *fakeSession, remote *fakeRemote, store *fakeCache) (*ProfileImageUploader, *[]time.Duration) {
	u := NewProfileImageUploader(session, remote, store)
	var delays []time.Duration
	u.sleep = func(d time.Duration) {
		delays = append(delays, d)
	}
	return u, &delays
}

func TestUpload_NotAuthenticatedBeforeFileChecks(t *testing.T) {
	session := &fakeSession{userID: ""}
	remote := &fakeRemote{}
	store := &fakeCache{}
	u, _ := newTestUploader(session, remote, store)

	// The file is also invalid; the identity failure must win
	_, err := u.Upload(memImage("notes.txt", "text/plain", []byte("hello")))
	if err == nil {
		t.Fatal("Upload should fail without an authenticated user")
	}
	if got := clierrors.TypeOf(err); got != clierrors.ErrorTypeNotAuthenticated {
		t.Errorf("expected not_authenticated, got %s", got)
	}
	if remote.calls != 0 {
		t.Errorf("no network call expected, got %d", remote.calls)
	}
}

func TestUpload_RejectsNonImageFiles(t *testing.T) {
	contentTypes := []string{"text/plain", "application/pdf", "video/mp4", ""}

	for _, ct := range contentTypes {
		session := &fakeSession{userID: "user-1"}
		remote := &fakeRemote{}
		u, _ := newTestUploader(session, remote, &fakeCache{})

		_, err := u.Upload(memImage("file.bin", ct, []byte("data")))
		if err == nil {
			t.Fatalf("Upload should reject content type %q", ct)
		}
		if got := clierrors.TypeOf(err); got != clierrors.ErrorTypeInvalidFileType {
			t.Errorf("content type %q: expected invalid_file_type, got %s", ct, got)
		}
		if remote.calls != 0 {
			t.Errorf("content type %q: no network call expected", ct)
		}
	}
}

func TestUpload_RejectsOversizedFiles(t *testing.T) {
	session := &fakeSession{userID: "user-1"}
	remote := &fakeRemote{}
	u, _ := newTestUploader(session, remote, &fakeCache{})

	file := NewImageFile("big.png", "image/png", MaxImageBytes+1, nil)

	_, err := u.Upload(file)
	if err == nil {
		t.Fatal("Upload should reject files over the size limit")
	}
	if got := clierrors.TypeOf(err); got != clierrors.ErrorTypeFileTooLarge {
		t.Errorf("expected file_too_large, got %s", got)
	}
	if remote.calls != 0 {
		t.Errorf("no network call expected, got %d", remote.calls)
	}
}

func TestUpload_AcceptsFileAtSizeLimit(t *testing.T) {
	session := &fakeSession{userID: "user-1"}
	remote := &fakeRemote{results: []remoteResult{successResponse("https://cdn.perch.app/img/a.png")}}
	u, _ := newTestUploader(session, remote, &fakeCache{})

	data := bytes.Repeat([]byte{0xAB}, int(MaxImageBytes))
	if _, err := u.Upload(memImage("exact.png", "image/png", data)); err != nil {
		t.Fatalf("Upload at exactly the size limit should succeed: %v", err)
	}
	if remote.calls != 1 {
		t.Errorf("expected one submission, got %d", remote.calls)
	}
}

func TestUpload_ReadFailure(t *testing.T) {
	session := &fakeSession{userID: "user-1"}
	remote := &fakeRemote{}
	u, _ := newTestUploader(session, remote, &fakeCache{})

	file := NewImageFile("gone.png", "image/png", 10, func() (io.ReadCloser, error) {
		return nil, fmt.Errorf("permission denied")
	})

	_, err := u.Upload(file)
	if err == nil {
		t.Fatal("Upload should fail when the file cannot be read")
	}
	if got := clierrors.TypeOf(err); got != clierrors.ErrorTypeRead {
		t.Errorf("expected read, got %s", got)
	}
	if remote.calls != 0 {
		t.Errorf("no network call expected, got %d", remote.calls)
	}
}

func TestUpload_Success(t *testing.T) {
	session := &fakeSession{userID: "user-1"}
	remote := &fakeRemote{results: []remoteResult{successResponse("https://x/y.png")}}
	store := &fakeCache{}
	u, _ := newTestUploader(session, remote, store)

	data := []byte{0x89, 0x50, 0x4E, 0x47}
	url, err := u.Upload(memImage("avatar.png", "image/png", data))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if url != "https://x/y.png" {
		t.Errorf("expected https://x/y.png, got %s", url)
	}
	if session.imageURL != "https://x/y.png" {
		t.Errorf("session profile image not updated: %s", session.imageURL)
	}
	if session.setCalls != 1 {
		t.Errorf("session should be updated exactly once, got %d", session.setCalls)
	}

	if len(store.invalidated) != 2 ||
		store.invalidated[0] != cache.KeyUserProfile ||
		store.invalidated[1] != cache.KeyUserStats {
		t.Errorf("expected user-profile and user-stats invalidated, got %v", store.invalidated)
	}

	if remote.lastReq.FileName != "avatar.png" {
		t.Errorf("file name not forwarded: %s", remote.lastReq.FileName)
	}
	if !strings.HasPrefix(remote.lastReq.ImageData, "data:image/png;base64,") {
		t.Errorf("payload is not a data URI: %.40s", remote.lastReq.ImageData)
	}
}

func TestUpload_MalformedResponse(t *testing.T) {
	session := &fakeSession{userID: "user-1"}
	remote := &fakeRemote{results: []remoteResult{
		{resp: &api.UploadImageResponse{}},
	}}
	store := &fakeCache{}
	u, _ := newTestUploader(session, remote, store)

	_, err := u.Upload(memImage("a.png", "image/png", []byte{1}))
	if err == nil {
		t.Fatal("Upload should fail when the response has no public URL")
	}
	if got := clierrors.TypeOf(err); got != clierrors.ErrorTypeMalformedResponse {
		t.Errorf("expected malformed_response, got %s", got)
	}
	if session.setCalls != 0 {
		t.Error("session must not be updated on a malformed response")
	}
	if len(store.invalidated) != 0 {
		t.Errorf("cache must be untouched, got %v", store.invalidated)
	}
	if remote.calls != 1 {
		t.Errorf("malformed responses are not retried, got %d calls", remote.calls)
	}
}

func TestUpload_RetriesOnceWithBoundedDelay(t *testing.T) {
	session := &fakeSession{userID: "user-1"}
	remote := &fakeRemote{results: []remoteResult{
		{err: fmt.Errorf("connection reset")},
		successResponse("https://x/retry.png"),
	}}
	u, delays := newTestUploader(session, remote, &fakeCache{})

	url, err := u.Upload(memImage("a.png", "image/png", []byte{1}))
	if err != nil {
		t.Fatalf("Upload should succeed on the retry: %v", err)
	}
	if url != "https://x/retry.png" {
		t.Errorf("unexpected URL: %s", url)
	}
	if remote.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", remote.calls)
	}

	if len(*delays) != 1 {
		t.Fatalf("expected one backoff delay, got %d", len(*delays))
	}
	d := (*delays)[0]
	if d < time.Second || d > 3*time.Second {
		t.Errorf("retry delay out of bounds: %v", d)
	}
}

func TestUpload_FailsAfterRetryBudget(t *testing.T) {
	session := &fakeSession{userID: "user-1"}
	remote := &fakeRemote{results: []remoteResult{
		{err: fmt.Errorf("service unavailable")},
		{err: fmt.Errorf("service unavailable")},
	}}
	u, _ := newTestUploader(session, remote, &fakeCache{})

	_, err := u.Upload(memImage("a.png", "image/png", []byte{1}))
	if err == nil {
		t.Fatal("Upload should fail after the retry budget is exhausted")
	}
	if got := clierrors.TypeOf(err); got != clierrors.ErrorTypeUploadService {
		t.Errorf("expected upload_service, got %s", got)
	}
	if !strings.Contains(err.Error(), "service unavailable") {
		t.Errorf("error should carry the service message: %v", err)
	}
	if remote.calls != 2 {
		t.Errorf("expected 2 attempts, got %d", remote.calls)
	}
	if session.setCalls != 0 {
		t.Error("session must not be updated on failure")
	}
}

func TestUpload_ProfileUpdateFailure(t *testing.T) {
	session := &fakeSession{userID: "user-1", setErr: errors.New("disk full")}
	remote := &fakeRemote{results: []remoteResult{successResponse("https://x/z.png")}}
	store := &fakeCache{}
	u, _ := newTestUploader(session, remote, store)

	_, err := u.Upload(memImage("a.png", "image/png", []byte{1}))
	if err == nil {
		t.Fatal("Upload should fail when the profile update fails")
	}
	if got := clierrors.TypeOf(err); got != clierrors.ErrorTypeProfileUpdate {
		t.Errorf("expected profile_update, got %s", got)
	}
	// Remote upload succeeded; the cache must still be untouched
	if len(store.invalidated) != 0 {
		t.Errorf("cache must not be invalidated, got %v", store.invalidated)
	}
}

func TestUpload_ErrorsCarryUploadPrefix(t *testing.T) {
	u, _ := newTestUploader(&fakeSession{}, &fakeRemote{}, &fakeCache{})

	_, err := u.Upload(memImage("a.png", "image/png", []byte{1}))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.HasPrefix(err.Error(), "profile image upload failed: ") {
		t.Errorf("error missing upload prefix: %v", err)
	}
}

func TestUpload_StatusFields(t *testing.T) {
	session := &fakeSession{userID: "user-1"}
	remote := &fakeRemote{results: []remoteResult{successResponse("https://x/ok.png")}}
	u, _ := newTestUploader(session, remote, &fakeCache{})

	if u.Pending() {
		t.Error("uploader should start idle")
	}

	if _, err := u.Upload(memImage("a.png", "image/png", []byte{1})); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if u.Pending() {
		t.Error("uploader should be idle after completion")
	}
	if u.LastError() != nil {
		t.Errorf("last error should be nil after success: %v", u.LastError())
	}

	// A failing upload overwrites the status
	failing := &fakeRemote{results: []remoteResult{
		{err: fmt.Errorf("down")},
		{err: fmt.Errorf("down")},
	}}
	u2, _ := newTestUploader(session, failing, &fakeCache{})
	_, _ = u2.Upload(memImage("a.png", "image/png", []byte{1}))
	if u2.LastError() == nil {
		t.Error("last error should be set after a failed upload")
	}
}

func TestBackoffDelay_CapsAtThreeSeconds(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 3 * time.Second},
		{5, 3 * time.Second},
	}

	for _, tt := range tests {
		if got := backoffDelay(tt.attempt); got != tt.want {
			t.Errorf("backoffDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}
