package auth

// OAuthIdentity represents user information obtained from the external
// identity provider.
type OAuthIdentity struct {
	Email      string
	Username   *string
	AvatarURL  *string
	ProviderID string
}
