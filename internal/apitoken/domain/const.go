package domain

// Permission is a capability string granted to an API token.
type Permission string

const (
	// PermissionWebhookReceive allows reading the catalog through protected routes.
	PermissionWebhookReceive Permission = "webhook_receive"

	// PermissionAPIAccess allows mutating the catalog and managing tokens and webhook settings.
	PermissionAPIAccess Permission = "api_access"
)

const (
	// TokenMarker is the fixed prefix every raw token starts with.
	TokenMarker = "vma_"

	// TokenLength is the total length of a raw token, marker included.
	TokenLength = 64

	// DisplayPrefixChars is how many characters after the marker are kept as display prefix.
	DisplayPrefixChars = 8

	// MaxExpiresInDays caps the requested token lifetime at one hundred years.
	MaxExpiresInDays = 36500
)

// DefaultPermissions returns the permission set granted when none is requested.
func DefaultPermissions() []Permission {
	return []Permission{PermissionWebhookReceive, PermissionAPIAccess}
}

// IsValid reports whether p is a known permission.
func (p Permission) IsValid() bool {
	switch p {
	case PermissionWebhookReceive, PermissionAPIAccess:
		return true
	}
	return false
}
