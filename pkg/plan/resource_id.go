package plan

import (
	"fmt"
	"strings"
)

const (
	ProviderComponent = "klotho"
	ProviderAWS       = "aws"
)

// ResourceId identifies one declared resource by provider, type and logical name.
type ResourceId struct {
	Provider string `yaml:"provider" json:"provider"`
	Type     string `yaml:"type" json:"type"`
	Name     string `yaml:"name" json:"name"`
}

func (id ResourceId) IsZero() bool {
	return id == ResourceId{}
}

func (id ResourceId) String() string {
	return id.Provider + ":" + id.Type + ":" + id.Name
}

func (id ResourceId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ResourceId) UnmarshalText(data []byte) error {
	parts := strings.SplitN(string(data), ":", 3)
	if len(parts) != 3 {
		return fmt.Errorf("invalid number of parts (%d) in resource id '%s'", len(parts), string(data))
	}
	id.Provider, id.Type, id.Name = parts[0], parts[1], parts[2]
	return nil
}

func ResourceIdLess(a, b ResourceId) bool {
	if a.Provider != b.Provider {
		return a.Provider < b.Provider
	}
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	return a.Name < b.Name
}
