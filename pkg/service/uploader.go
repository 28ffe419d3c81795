package service

import (
	"fmt"
	"time"

	"github.com/perchapp/cli/pkg/api"
	"github.com/perchapp/cli/pkg/cache"
	"github.com/perchapp/cli/pkg/errors"
	"github.com/perchapp/cli/pkg/logger"
)

// MaxImageBytes is the largest profile image accepted for upload (2 MiB)
const MaxImageBytes int64 = 2 * 1024 * 1024

// maxSubmitAttempts bounds the submit step to one automatic retry
const maxSubmitAttempts = 2

// Session is the authenticated user context the uploader writes into.
// UserID returns "" when no user is signed in.
type Session interface {
	UserID() string
	SetProfileImageURL(url string) error
}

// Remote accepts an encoded image and returns the stored image's location
type Remote interface {
	UploadImage(req api.UploadImageRequest) (*api.UploadImageResponse, error)
}

// Invalidator marks named cache regions stale
type Invalidator interface {
	Invalidate(key string)
}

// ProfileImageUploader validates, encodes, submits, and propagates the
// result of a single profile-image upload. Uploads are not coordinated:
// two concurrent calls run independently and the last session write wins.
type ProfileImageUploader struct {
	session Session
	remote  Remote
	cache   Invalidator

	sleep func(time.Duration)

	pending bool
	lastErr error
}

// NewProfileImageUploader creates an uploader with explicit collaborators
func NewProfileImageUploader(session Session, remote Remote, cache Invalidator) *ProfileImageUploader {
	return &ProfileImageUploader{
		session: session,
		remote:  remote,
		cache:   cache,
		sleep:   time.Sleep,
	}
}

// Pending reports whether an upload is currently in flight. Advisory only.
func (u *ProfileImageUploader) Pending() bool {
	return u.pending
}

// LastError returns the most recent upload error, if any. Advisory only.
func (u *ProfileImageUploader) LastError() error {
	return u.lastErr
}

// Upload runs the full upload sequence and returns the public URL of the
// stored image. On failure no state has changed, with one exception: a
// profile_update error means the remote store accepted the image but the
// local session was not updated.
func (u *ProfileImageUploader) Upload(file *ImageFile) (string, error) {
	u.pending = true
	u.lastErr = nil

	url, err := u.upload(file)

	u.pending = false
	u.lastErr = err

	if err != nil {
		return "", fmt.Errorf("profile image upload failed: %w", err)
	}
	return url, nil
}

func (u *ProfileImageUploader) upload(file *ImageFile) (string, error) {
	// Identity check comes before any inspection of the file
	if u.session.UserID() == "" {
		return "", errors.NotAuthenticatedError()
	}

	if !file.IsImage() {
		return "", errors.InvalidFileTypeError(file.ContentType)
	}

	if file.Size > MaxImageBytes {
		return "", errors.FileTooLargeError(file.Size, MaxImageBytes)
	}

	dataURI, err := file.EncodeDataURI()
	if err != nil {
		return "", err
	}

	resp, err := u.submit(api.UploadImageRequest{
		ImageData: dataURI,
		FileName:  file.Name,
	})
	if err != nil {
		return "", err
	}

	// A success payload without the public URL is malformed; never retried
	if resp.Data.PublicURL == "" {
		return "", errors.MalformedResponseError()
	}

	// The session is updated at most once, before the URL is handed back.
	// If this fails the image is already stored remotely; callers cannot
	// assume local state is coherent.
	if err := u.session.SetProfileImageURL(resp.Data.PublicURL); err != nil {
		return "", errors.ProfileUpdateError(err)
	}

	u.cache.Invalidate(cache.KeyUserProfile)
	u.cache.Invalidate(cache.KeyUserStats)

	return resp.Data.PublicURL, nil
}

// submit sends the encoded payload, retrying once on remote failure.
// Only errors from the remote call itself are retried; validation and
// malformed-response failures never reach this path.
func (u *ProfileImageUploader) submit(req api.UploadImageRequest) (*api.UploadImageResponse, error) {
	var lastErr error

	for attempt := 0; attempt < maxSubmitAttempts; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt - 1)
			logger.Debug("Retrying upload", "attempt", attempt, "delay", delay)
			u.sleep(delay)
		}

		resp, err := u.remote.UploadImage(req)
		if err == nil {
			return resp, nil
		}

		logger.Debug("Upload attempt failed", "attempt", attempt, "error", err.Error())
		lastErr = err
	}

	return nil, errors.UploadServiceError(lastErr)
}

// backoffDelay returns min(1000 * 2^attempt, 3000) milliseconds
func backoffDelay(attempt int) time.Duration {
	delay := time.Second << uint(attempt)
	if delay > 3*time.Second {
		delay = 3 * time.Second
	}
	return delay
}
