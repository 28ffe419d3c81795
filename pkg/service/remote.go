package service

import "github.com/perchapp/cli/pkg/api"

// apiRemote adapts the typed API layer to the uploader's Remote interface
type apiRemote struct{}

func (apiRemote) UploadImage(req api.UploadImageRequest) (*api.UploadImageResponse, error) {
	return api.UploadProfileImage(req)
}
