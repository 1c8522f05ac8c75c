package devices

import "github.com/JaimeStill/device-inventory/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Create *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all device endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List devices",
		Description: "Returns every device with its software versions, oldest first",
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Device list",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Device")}},
				},
			},
			500: openapi.ResponseRef("InternalError"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Find device by ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Device UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Device", "Device"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create device",
		Description: "Stores a device and its software versions. Rows with a blank name or version are dropped.",
		RequestBody: openapi.RequestBodyJSON("DeviceCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Device created", "Device"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			500: openapi.ResponseRef("InternalError"),
		},
		Security: openapi.BearerAuth(),
	},
	Update: &openapi.Operation{
		Summary:     "Update device",
		Description: "Replaces the device fields and its full software version set",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Device UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("DeviceCommand", true),
		Responses: map[int]*openapi.Response{
			204: {Description: "Device updated"},
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("InternalError"),
		},
		Security: openapi.BearerAuth(),
	},
	Delete: &openapi.Operation{
		Summary:     "Delete device",
		Description: "Removes a device and all of its software versions",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Device UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Device deleted"},
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
		Security: openapi.BearerAuth(),
	},
}

func maxLen(n int) *int { return &n }

// Schemas returns the device domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Device": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                {Type: "string", Format: "uuid"},
				"name":              {Type: "string"},
				"model":             {Type: "string"},
				"os":                {Type: "string"},
				"image_url":         {Type: "string", Nullable: true},
				"download_url":      {Type: "string", Nullable: true},
				"created_at":        {Type: "string", Format: "date-time"},
				"software_versions": {Type: "array", Items: openapi.SchemaRef("SoftwareVersion")},
			},
		},
		"SoftwareVersion": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":        {Type: "string", Format: "uuid"},
				"device_id": {Type: "string", Format: "uuid"},
				"name":      {Type: "string", Example: "Player"},
				"version":   {Type: "string", Example: "7059"},
			},
		},
		"DeviceFields": {
			Type:     "object",
			Required: []string{"name", "model", "os"},
			Properties: map[string]*openapi.Schema{
				"name":         {Type: "string", MaxLength: maxLen(100), Example: "Giada DN74"},
				"model":        {Type: "string", MaxLength: maxLen(100), Example: "DN74"},
				"os":           {Type: "string", MaxLength: maxLen(100), Example: "Android 11"},
				"image_url":    {Type: "string", Nullable: true},
				"download_url": {Type: "string", Nullable: true},
			},
		},
		"VersionInput": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":    {Type: "string"},
				"version": {Type: "string"},
			},
		},
		"DeviceCommand": {
			Type:     "object",
			Required: []string{"device"},
			Properties: map[string]*openapi.Schema{
				"device":            openapi.SchemaRef("DeviceFields"),
				"software_versions": {Type: "array", Items: openapi.SchemaRef("VersionInput")},
			},
		},
	}
}
