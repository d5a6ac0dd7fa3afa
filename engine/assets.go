package engine

import "path/filepath"

// DefaultAssetRoot is where assets are looked up unless configured otherwise.
const DefaultAssetRoot = "assets"

// Assets resolves asset names relative to a root directory.
type Assets struct {
	root string
}

func NewAssets(root string) *Assets {
	if root == "" {
		root = DefaultAssetRoot
	}
	return &Assets{root: root}
}

func (a *Assets) Root() string {
	return a.root
}

func (a *Assets) SetRoot(root string) {
	a.root = root
}

// Resolve joins rel onto the root. Absolute paths are returned unchanged.
func (a *Assets) Resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(a.root, rel)
}
