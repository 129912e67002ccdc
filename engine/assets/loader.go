package assets

import "github.com/spaghettifunk/anima-spatial/engine/resources"

type Loader interface {
	Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) // `interface{}` here allows loaders to take per-type options
	Unload(*resources.Resource) error
}
