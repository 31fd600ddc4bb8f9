package platform

// VolumeKind classifies a mounted volume for the explorer sidebar.
type VolumeKind string

const (
	VolumeFixed     VolumeKind = "fixed"
	VolumeRemovable VolumeKind = "removable"
	VolumeNetwork   VolumeKind = "network"
	VolumeUnknown   VolumeKind = "unknown"
)

// Volume describes one mounted filesystem root.
type Volume struct {
	Name      string     `json:"name"`
	Path      string     `json:"path"`
	Kind      VolumeKind `json:"kind"`
	Removable bool       `json:"removable"`
}

// VolumeLister enumerates mounted volumes. Enumeration is a thin wrapper
// around platform APIs, so it stays behind this interface.
type VolumeLister interface {
	ListVolumes() ([]Volume, error)
}

// RootVolume is the fallback VolumeLister: a single fixed volume at the
// filesystem root.
type RootVolume struct{}

// ListVolumes returns the root filesystem as the only volume.
func (RootVolume) ListVolumes() ([]Volume, error) {
	return []Volume{{Name: "/", Path: "/", Kind: VolumeFixed}}, nil
}
