package domain

// Catalog is read-only access to the asset and profile tables. The static
// built-in catalog is the production implementation; tests substitute
// their own tables.
type Catalog interface {
	Asset(id string) (Asset, error)
	Profile(id string) (Profile, error)
	Assets() []Asset
	// Profiles returns every profile sorted by ascending RAM tier.
	Profiles() []Profile
}
