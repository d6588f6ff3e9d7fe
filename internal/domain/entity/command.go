package entity

// RequestMode is the kind of open/close command sent to a container.
type RequestMode string

const (
	RequestToggle RequestMode = "toggle"
	RequestOpen   RequestMode = "open"
	RequestClose  RequestMode = "close"
)

// OpenOptions tune how an opening container picks its grow.
type OpenOptions struct {
	// IsPrevSizeOpen restores the grow recorded at the last close.
	IsPrevSizeOpen bool
	// IsResize redistributes all open containers equally.
	IsResize bool
	// OpenGrowImportant forces the target grow when positive.
	OpenGrowImportant float64
}

// CloseOptions tune how a closing container hands back its share.
type CloseOptions struct {
	IsResize           bool
	DisableResizePanel bool
}

// ContainerStateRequest is an open/close/toggle command for a container.
type ContainerStateRequest struct {
	Mode         RequestMode
	OpenOptions  *OpenOptions
	CloseOptions *CloseOptions
	// OnOpen and OnClose run once the transition has settled.
	OnOpen  func()
	OnClose func()
}

// ContainerState is the settled open state broadcast after a transition.
type ContainerState struct {
	LayoutName    string
	ContainerName string
	IsOpen        bool
	Grow          float64
}
