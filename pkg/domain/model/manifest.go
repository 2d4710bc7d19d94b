package model

// Integration is the static self-description document served to the
// platform at registration time. The platform reads it to learn which
// settings to render and which URL to call on message events.
type Integration struct {
	Data IntegrationData `json:"data"`
}

// IntegrationData holds the manifest body
type IntegrationData struct {
	Date                IntegrationDate        `json:"date"`
	Descriptions        IntegrationDescription `json:"descriptions"`
	IsActive            bool                   `json:"is_active"`
	IntegrationType     string                 `json:"integration_type"`
	KeyFeatures         []string               `json:"key_features"`
	IntegrationCategory string                 `json:"integration_category"`
	Author              string                 `json:"author"`
	Settings            []ManifestSetting      `json:"settings"`
	TargetURL           string                 `json:"target_url"`
}

// IntegrationDate records manifest creation/update dates
type IntegrationDate struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// IntegrationDescription holds the display metadata
type IntegrationDescription struct {
	AppName         string `json:"app_name"`
	AppDescription  string `json:"app_description"`
	AppLogo         string `json:"app_logo"`
	AppURL          string `json:"app_url"`
	BackgroundColor string `json:"background_color"`
}

// ManifestSetting describes one configurable setting of the integration
type ManifestSetting struct {
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Default  string   `json:"default"`
	Options  []string `json:"options,omitempty"`
}

// NewIntegration builds the manifest for a deployment reachable at baseURL
func NewIntegration(baseURL string) *Integration {
	return &Integration{
		Data: IntegrationData{
			Date: IntegrationDate{
				CreatedAt: "2025-02-17",
				UpdatedAt: "2025-02-17",
			},
			Descriptions: IntegrationDescription{
				AppName:         "Mention Notifier",
				AppDescription:  "Notifies a user via email whenever they are @mentioned in a channel",
				AppLogo:         "https://logowik.com/content/uploads/images/513_email.jpg",
				AppURL:          baseURL,
				BackgroundColor: "#fff",
			},
			IsActive:            true,
			IntegrationType:     "output",
			KeyFeatures:         []string{"Notification", "Communication", "Mentions"},
			IntegrationCategory: "Email & Messaging",
			Author:              "Telex Integrations",
			Settings: []ManifestSetting{
				{
					Label:    "Trigger event",
					Type:     "dropdown",
					Required: true,
					Default:  "message_posted",
					Options:  []string{"message_posted", "channel_updated", "user_mentioned"},
				},
				{Label: "message", Type: "text", Required: true},
				{Label: "Sender", Type: "text", Required: true},
				{Label: "Channel", Type: "text", Required: true},
				{Label: "Mentions", Type: "text", Required: true},
				{
					Label:    "Enable Email Notifications",
					Type:     "checkbox",
					Required: true,
					Default:  "true",
				},
			},
			TargetURL: baseURL + "/telex-target",
		},
	}
}
