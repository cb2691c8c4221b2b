package mutation

import (
	"fmt"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
)

// AddAsset registers an uploaded media reference on the project. The source
// is embedded by value, so elements reference it without external URLs.
func AddAsset(p *domain.Project, name, assetType, source string) (*domain.Project, string, error) {
	if assetType != domain.AssetImage && assetType != domain.AssetVideo {
		return p, "", fmt.Errorf("unknown asset type %q", assetType)
	}
	next := p.Clone()
	asset := domain.Asset{ID: domain.NewID(), Name: name, Type: assetType, Source: source}
	next.Assets = append(next.Assets, asset)
	touch(next)
	return next, asset.ID, nil
}

// RemoveAsset deletes an asset from the project. Elements that embedded the
// asset's source keep their copy; nothing cascades.
func RemoveAsset(p *domain.Project, assetID string) (*domain.Project, error) {
	for i := range p.Assets {
		if p.Assets[i].ID == assetID {
			next := p.Clone()
			next.Assets = append(next.Assets[:i], next.Assets[i+1:]...)
			touch(next)
			return next, nil
		}
	}
	return p, domain.ErrAssetNotFound
}
