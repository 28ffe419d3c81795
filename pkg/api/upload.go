package api

import (
	json "github.com/json-iterator/go"
	"github.com/perchapp/cli/pkg/client"
	"github.com/perchapp/cli/pkg/logger"
)

// UploadProfileImage submits an encoded image to the upload endpoint.
// The response carries the public URL of the stored image under data.public_url;
// callers are responsible for rejecting responses where that field is empty.
func UploadProfileImage(req UploadImageRequest) (*UploadImageResponse, error) {
	logger.Debug("Uploading profile image", "file_name", req.FileName)

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/api/v1/images/upload")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var uploadResp UploadImageResponse
	if err := json.Unmarshal(resp.Body(), &uploadResp); err != nil {
		return nil, err
	}

	logger.Debug("Profile image uploaded", "public_url", uploadResp.Data.PublicURL)
	return &uploadResp, nil
}
