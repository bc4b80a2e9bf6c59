package types

// LocalInstall is one `apt list --installed` row flagged [installed,local].
type LocalInstall struct {
	Package      string `json:"package" yaml:"package"`
	Version      string `json:"version" yaml:"version"`
	Architecture string `json:"architecture" yaml:"architecture"`
}

// DebControl holds the control fields reported by dpkg-deb --info.
type DebControl struct {
	Package          string   `json:"package" yaml:"package"`
	Version          string   `json:"version,omitempty" yaml:"version,omitempty"`
	Architecture     string   `json:"architecture,omitempty" yaml:"architecture,omitempty"`
	Maintainer       string   `json:"maintainer,omitempty" yaml:"maintainer,omitempty"`
	Description      string   `json:"description,omitempty" yaml:"description,omitempty"`
	Section          string   `json:"section,omitempty" yaml:"section,omitempty"`
	Priority         string   `json:"priority,omitempty" yaml:"priority,omitempty"`
	Homepage         string   `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Source           string   `json:"source,omitempty" yaml:"source,omitempty"`
	InstalledSize    string   `json:"installed_size,omitempty" yaml:"installed_size,omitempty"`
	DownloadSize     string   `json:"download_size,omitempty" yaml:"download_size,omitempty"`
	StandardsVersion string   `json:"standards_version,omitempty" yaml:"standards_version,omitempty"`
	Depends          []string `json:"depends,omitempty" yaml:"depends,omitempty"`
	PreDepends       []string `json:"pre_depends,omitempty" yaml:"pre_depends,omitempty"`
	Recommends       []string `json:"recommends,omitempty" yaml:"recommends,omitempty"`
	Suggests         []string `json:"suggests,omitempty" yaml:"suggests,omitempty"`
	Enhances         []string `json:"enhances,omitempty" yaml:"enhances,omitempty"`
	Conflicts        []string `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Breaks           []string `json:"breaks,omitempty" yaml:"breaks,omitempty"`
	Provides         []string `json:"provides,omitempty" yaml:"provides,omitempty"`
	Replaces         []string `json:"replaces,omitempty" yaml:"replaces,omitempty"`
	Filename         string   `json:"filename,omitempty" yaml:"filename,omitempty"`
	Origin           string   `json:"origin" yaml:"origin"`
}
