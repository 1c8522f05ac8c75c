package uploads

import "github.com/JaimeStill/device-inventory/pkg/openapi"

type spec struct {
	Upload *openapi.Operation
}

// Spec contains OpenAPI operation definitions for upload endpoints.
var Spec = spec{
	Upload: &openapi.Operation{
		Summary:     "Upload artifact",
		Description: "Validates and stores a .zip, .brs, or .bsfw file of at most 50 MiB. The returned URL is publicly readable.",
		RequestBody: openapi.RequestBodyMultipart(&openapi.Schema{
			Type:     "object",
			Required: []string{"file"},
			Properties: map[string]*openapi.Schema{
				"file": {Type: "string", Format: "binary"},
				"key":  {Type: "string", Description: "Device identifier used as the path prefix, one segment of [A-Za-z0-9_-]. Generated when omitted."},
			},
		}, true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("File stored", "UploadResult"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			413: openapi.ResponseRef("PayloadTooLarge"),
			500: openapi.ResponseRef("InternalError"),
		},
		Security: openapi.BearerAuth(),
	},
}

// Schemas returns the upload domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"UploadResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"path": {Type: "string", Example: "abc123/My_File__v2_.zip"},
				"url":  {Type: "string", Example: "/blobs/device-downloads/abc123/My_File__v2_.zip"},
			},
		},
	}
}
